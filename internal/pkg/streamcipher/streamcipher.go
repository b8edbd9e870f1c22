// Package streamcipher implements the password-keyed stream cipher used for
// portable export bundles. The keystream is fully determined by the
// password: no nonce, no authentication tag, no header. Corrupt ciphertext
// or a wrong password decrypts to garbage bytes, never to an error, and is
// detected downstream by bundle parse failure. The wire format is a
// contract with existing exports; changing the scheme means versioning the
// blob, not swapping the algorithm in place.
package streamcipher

// Encrypt XORs plaintext against the password keystream. The empty password
// is an explicit pass-through.
func Encrypt(plaintext []byte, password string) []byte {
	return apply(plaintext, password)
}

// Decrypt is the inverse of Encrypt; the cipher is symmetric so it is the
// same transformation.
func Decrypt(ciphertext []byte, password string) []byte {
	return apply(ciphertext, password)
}

func apply(data []byte, password string) []byte {
	out := make([]byte, len(data))
	if password == "" {
		copy(out, data)
		return out
	}

	state := schedule([]byte(password))

	// Pseudo-random generation: swap-and-pick keystream over the permutation.
	var i, j byte
	for n := range data {
		i++
		j += state[i]
		state[i], state[j] = state[j], state[i]
		out[n] = data[n] ^ state[state[i]+state[j]]
	}
	return out
}

// schedule derives the 256-entry permutation from the key bytes.
func schedule(key []byte) [256]byte {
	var state [256]byte
	for i := range state {
		state[i] = byte(i)
	}
	var j byte
	for i := 0; i < 256; i++ {
		j += state[i] + key[i%len(key)]
		state[i], state[j] = state[j], state[i]
	}
	return state
}
