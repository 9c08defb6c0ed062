package save

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// HD版のセーブデータの暗号化に使う鍵とIV
var (
	cryptKey = []byte("Atlus-inc-SQS3SE")
	cryptIV  = []byte("Atlus-inc-SQS3Se")
)

// Decrypt はAES-128-CBCで暗号化されたセーブデータを復号し、PKCS#7パディングを取り除きます
func Decrypt(encrypted []byte) ([]byte, error) {
	if len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of the block size", ErrInvalidLength, len(encrypted))
	}
	block, err := aes.NewCipher(cryptKey)
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, cryptIV).CryptBlocks(plain, encrypted)

	n := int(plain[len(plain)-1])
	if n == 0 || n > aes.BlockSize || !bytes.Equal(plain[len(plain)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, ErrInvalidPadding
	}
	return plain[:len(plain)-n], nil
}

// Encrypt はPKCS#7でパディングしてAES-128-CBCで暗号化します
func Encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(cryptKey)
	if err != nil {
		return nil, err
	}
	n := aes.BlockSize - len(plain)%aes.BlockSize
	padded := make([]byte, len(plain), len(plain)+n)
	copy(padded, plain)
	padded = append(padded, bytes.Repeat([]byte{byte(n)}, n)...)

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, cryptIV).CryptBlocks(out, padded)
	return out, nil
}
