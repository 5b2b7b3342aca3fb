// Package protocol owns the NBT array payload contract.
//
// Ownership boundary:
// - array kinds and the in-memory Value model
// - payload encode/decode for byte, int and long arrays
// - length validation against format and configured limits
//
// Tag ids, names and the surrounding tag tree belong to the caller; this
// package only reads and writes the payload of one array-typed node.
package protocol
