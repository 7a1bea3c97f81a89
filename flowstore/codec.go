package flowstore

import (
	"crypto/pbkdf2"
	"crypto/sha256"
	"encoding/base64"

	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
)

const minKeyLength = 96

// Codec seals token sets so drivers only ever see ciphertext.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec derives the hash and block keys from a base64 encoded key of at least 96 bytes.
// A random key is generated when tokenKey is empty, so sealed tokens do not survive a restart.
func NewCodec(tokenKey string) (*Codec, error) {
	var k []byte
	if tokenKey == "" {
		k = securecookie.GenerateRandomKey(minKeyLength)
		if k == nil {
			return nil, errors.New("failed to generate random key")
		}
	} else {
		var err error
		if k, err = base64.StdEncoding.DecodeString(tokenKey); err != nil {
			return nil, errors.Wrap(err, "base64.StdEncoding.DecodeString()")
		}
	}
	if len(k) < minKeyLength {
		return nil, errors.Newf("token key too short. Expect minimum of %d bytes. (128 bytes when base64 encoded)", minKeyLength)
	}

	hSaltIndex := int(k[55] % 4)
	hIndex := int(k[7]%4 + 12)
	saltIndex := int(k[73]%4 + 48)
	index := int(k[37]%4 + 60)

	hash, err := pbkdf2.Key(sha256.New, string(k[hIndex:hIndex+32]), k[hSaltIndex:hSaltIndex+8], 4356+hIndex*saltIndex, 64)
	if err != nil {
		return nil, errors.Wrap(err, "pbkdf2.Key()")
	}

	block, err := pbkdf2.Key(sha256.New, string(k[index:index+32]), k[saltIndex:saltIndex+8], 4491+(hSaltIndex+1)*index, 32)
	if err != nil {
		return nil, errors.Wrap(err, "pbkdf2.Key()")
	}

	// Expiry is enforced by the store, and tokens can exceed the cookie size limit.
	sc := securecookie.New(hash, block).MaxAge(0).MaxLength(0)
	sc.SetSerializer(securecookie.JSONEncoder{})

	return &Codec{sc: sc}, nil
}

// Seal encrypts tokens bound to the correlation id.
func (c *Codec) Seal(correlationID string, tokens *Tokens) (string, error) {
	sealed, err := c.sc.Encode(correlationID, tokens)
	if err != nil {
		return "", errors.Wrap(err, "securecookie.SecureCookie.Encode()")
	}

	return sealed, nil
}

// Open decrypts tokens sealed for the same correlation id.
func (c *Codec) Open(correlationID, sealed string) (*Tokens, error) {
	tokens := &Tokens{}
	if err := c.sc.Decode(correlationID, sealed, tokens); err != nil {
		return nil, errors.Wrap(err, "securecookie.SecureCookie.Decode()")
	}

	return tokens, nil
}
