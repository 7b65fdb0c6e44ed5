// Package envelope seals opaque plaintext under a password-derived key.
//
// A sealed envelope carries the key-derivation algorithm, the salt and the
// nonce in the clear, followed by the AES-256-GCM ciphertext and tag, so a
// file can be opened with nothing but the password. Every seal draws a new
// salt and a new nonce.
package envelope
