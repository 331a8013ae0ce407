// Package menp implements Menp, the small scripting language menus use to
// react to clicks.
//
// A script is a list of methods. Whitespace outside strings is ignored,
// '#' starts a comment and '@file' includes another script:
//
//	# show the recent list only when it has entries
//	open:(
//	  (:opened;$0)
//	  (!visible;"recent")
//	  (<%opened)
//	)
//
//	main:(
//	  (,(?hidden;"recent");(!disabled;"clear");(!enabled;"clear"))
//	)
//
// A segment runs its leading groups in order and then applies the operator
// that follows them to its ';' separated arguments:
//
//	>  call      >name;args...
//	<  return    <values...
//	~  undeclare ~%var...
//	.  expand    splice lists
//	*  not       negate booleans
//	=  same      equality, multiset equality for a list
//	|  union     distinct values, or of booleans
//	&  intersect common values, and of booleans
//	^  parity    values occurring an odd number of times, xor of booleans
//	,  if        ,cond;then;else
//	:  assign    :name;value
//	!  set       !setting;ids...
//	?  query     ?setting;ids... (any), ?? (all), ??? (odd number failing)
//
// Arguments are groups, $N parameters, $$ (all parameters), %variables,
// double-quoted strings (with "" for '"' and \\ for '\') or booleans
// (true and 1 are true, anything else false).
//
// Settings are visible, hidden, enabled, disabled and selected, each
// optionally followed by =true or =false, and accelerator=<keys> for "!".
//
// [Load] compiles a script and [New] creates an [Interp] that implements
// [menu.Invoker]:
//
//	prog, err := menp.Load(ctx, "editor.menp")
//	in := menp.New(prog)
//	ids, err := menu.Build(ctx, w, "editor.jmml", menu.WithInvoker(in))
package menp
