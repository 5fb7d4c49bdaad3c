// Package cli implements the flowsearch command line.
//
// Commands:
//
//	flowsearch serve                 serve search over HTTP, configured from FLOWSEARCH_* variables
//	flowsearch search <query...>     search a flow file and print matches grouped by kind
//	flowsearch kinds                 list the searchable component kinds
//
// Queries accept kind:<kind> and group:<id|name> filters ahead of the term:
//
//	flowsearch search --flow flow.yaml kind:connection csv
//	flowsearch search --flow flow.yaml --json 'group:"error handling" fail'
package cli
