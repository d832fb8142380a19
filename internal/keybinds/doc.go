/*
Package keybinds maps terminal key names to application actions.

Bindings live in a Registry keyed by Context (main menu, each browser list,
the detail viewer, input modals). A key is matched in its own context first
and then in the global context, so "ctrl+c" works everywhere unless a context
rebinds it.

User overrides are read from keybinds.json. The file may contain comments;
each section maps an action to a comma-separated key list and replaces every
default key of that action in that context:

	{
	  // vim users
	  "collection_list": { "open_graphs": "G", "go_to_bottom": "end" }
	}

The Validator reports unknown actions, keys claimed by two actions of one
section, shadowed global keys and contexts left without an essential action.
*/
package keybinds
