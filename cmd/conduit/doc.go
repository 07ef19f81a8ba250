// Command conduit is the CLI companion to the conduit communication layer.
//
// It drives a co-located service over the command channel (send, fire,
// alive), exchanges framed messages over the IPC socket (ping), and reports
// the reachability of both destinations (status). Configuration is loaded
// from ~/.config/conduit/config.toml or the --config flag.
package main
