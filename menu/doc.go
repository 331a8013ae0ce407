// Package menu builds menu trees from line-oriented configuration files.
//
// A configuration file describes one node per line. Captions are double
// quoted, specials are parenthesized and everything else is either a line
// flag or a key=value setting:
//
//	"File" >
//	  !"!New"  id=new  accelerator=<ctrl>n
//	  "Open"   id=open accelerator=<ctrl>o invoke=open
//	  -
//	  (recent ? "No recent files")
//	  --
//	  "Quit"   id=quit
//	<
//	"View" >
//	  {
//	  "Small"  id=small type=radio
//	  "Large"  id=large type=RADIO
//	  }
//	<
//
// Lines starting with '@' include another file, and a trailing '\' joins a
// line with the next one. A '!' in front of a caption makes the first '!'
// inside it mark the mnemonic character.
//
// # Building
//
// [Build] reads the file and attaches the resulting tree to a [Host]:
//
//	w := menu.NewWindow("editor")
//	ids, err := menu.Build(ctx, w, "editor.jmml",
//		menu.WithListener(menu.ListenerFuncs{Clicked: onClick}))
//
// The returned [Index] maps ids to nodes. It holds weak references only,
// so it never keeps a replaced menu bar alive.
//
// # Tags
//
// A [Tag] is a named slot that an application fills with items at runtime
// through [Tag.SetItems]. Tags are shared across builds through a
// [TagRegistry].
package menu
