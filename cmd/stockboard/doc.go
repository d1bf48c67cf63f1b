// Command stockboard is the CLI for the stockboard daemon. It talks to the
// daemon over a unix socket for board operations and can answer stage and
// transition questions locally from configuration.
package main
