/*
Package network defines the network layer interface (C5) the server main
loop drives, plus TCPNetworkLayer, a demo implementation that accepts plain
length-prefixed framed connections and turns their traffic into Jobs.

A NetworkLayer has a single-consumer contract: exactly one goroutine (the
server's main loop) may call GetJobs/Stop/DeleteMembers on a given instance
at a time. Everything internal to a layer that produces jobs (accept loops,
per-connection readers) may run on its own goroutines; the layer is
responsible for funneling their output through GetJobs so the loop never
has to know how a given layer is implemented. Decoding the wire encoding
is out of scope here; this layer ships raw payloads up as
KindBinaryMessage jobs for whatever decodes them.
*/
package network
