package streamcipher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		plaintext []byte
		password  string
	}{
		{"short text", []byte("hello"), "secret"},
		{"empty plaintext", []byte{}, "secret"},
		{"empty password", []byte("hello"), ""},
		{"both empty", []byte{}, ""},
		{"binary bytes", []byte{0x00, 0xff, 0x10, 0x80, 0x7f}, "p4ssw0rd!"},
		{"long plaintext", bytes.Repeat([]byte("clinical photo documentation "), 100), "a"},
		{"multibyte password", []byte("payload"), "påsswörd-日本語"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext := Encrypt(tc.plaintext, tc.password)
			assert.Equal(t, tc.plaintext, Decrypt(ciphertext, tc.password))
		})
	}
}

func TestEncryptChangesDataForNonEmptyPassword(t *testing.T) {
	plaintext := []byte(`{"resourceType":"Bundle","type":"collection"}`)

	ciphertext := Encrypt(plaintext, "secret")

	assert.NotEqual(t, plaintext, ciphertext)
	assert.Len(t, ciphertext, len(plaintext))
}

func TestEmptyPasswordIsPassThrough(t *testing.T) {
	plaintext := []byte("not actually protected")

	assert.Equal(t, plaintext, Encrypt(plaintext, ""))
	assert.Equal(t, plaintext, Decrypt(plaintext, ""))
}

func TestWrongPasswordYieldsGarbageNotError(t *testing.T) {
	plaintext := []byte(`{"resourceType":"Bundle"}`)

	garbage := Decrypt(Encrypt(plaintext, "pw1"), "pw2")

	assert.Len(t, garbage, len(plaintext))
	assert.NotEqual(t, plaintext, garbage)
}

func TestDeterministicKeystream(t *testing.T) {
	plaintext := []byte("same in, same out")

	first := Encrypt(plaintext, "secret")
	second := Encrypt(plaintext, "secret")

	assert.Equal(t, first, second)
}

func TestEncryptDoesNotMutateInput(t *testing.T) {
	plaintext := []byte("immutable")
	original := append([]byte(nil), plaintext...)

	Encrypt(plaintext, "secret")

	assert.Equal(t, original, plaintext)
}
