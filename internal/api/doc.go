// Package api defines the JSON documents served by the checkup endpoints and
// consumed from peers.
//
// PeerStatus embeds activitylog.Snapshot so the snapshot fields sit at the top
// level of the document next to success and hostname. Peers run the same
// binary, which makes a /checkup response decodable straight into a
// PeerStatus without an intermediate type.
package api
