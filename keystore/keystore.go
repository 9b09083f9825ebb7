// Package keystore 管理本机对称密钥，并提供 AES-256-GCM 加解密。
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// KeySize AES-256 密钥长度
	KeySize = 32
	// IVSize GCM 随机数长度
	IVSize = 12

	keyFilePerm = 0600
	keyDirPerm  = 0700
)

var (
	// ErrInvalidKey 密钥文件内容非法
	ErrInvalidKey = errors.New("密钥文件内容无效")
	// ErrCiphertext 密文格式错误或认证失败
	ErrCiphertext = errors.New("密文无效或已被篡改")
)

// Key 本机数据加密密钥，由调用方显式构造并传递
type Key struct {
	aead cipher.AEAD
	rand io.Reader
}

// New 由原始密钥字节创建
func New(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: 需要 %d 字节，实际 %d 字节", ErrInvalidKey, KeySize, len(raw))
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("创建 AES 失败: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("创建 GCM 失败: %w", err)
	}
	return &Key{aead: aead, rand: rand.Reader}, nil
}

// Generate 生成新的随机密钥
func Generate() (*Key, []byte, error) {
	raw := make([]byte, KeySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, nil, fmt.Errorf("生成密钥失败: %w", err)
	}
	k, err := New(raw)
	return k, raw, err
}

// LoadOrGenerate 读取密钥文件，不存在时生成并保存
// 文件内容为 base64 编码的 32 字节密钥
func LoadOrGenerate(path string) (*Key, bool, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		k, err := New(raw)
		return k, false, err
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("读取密钥文件失败: %w", err)
	}

	k, raw, err := Generate()
	if err != nil {
		return nil, false, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, keyDirPerm); err != nil {
			return nil, false, fmt.Errorf("创建密钥目录失败: %w", err)
		}
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	if err := os.WriteFile(path, []byte(encoded+"\n"), keyFilePerm); err != nil {
		return nil, false, fmt.Errorf("保存密钥文件失败: %w", err)
	}
	return k, true, nil
}

// Encrypt 加密并返回 base64(iv || ciphertext)，每次使用新的随机 IV
func (k *Key) Encrypt(plain []byte) (string, error) {
	iv := make([]byte, IVSize, IVSize+len(plain)+k.aead.Overhead())
	if _, err := io.ReadFull(k.rand, iv); err != nil {
		return "", fmt.Errorf("生成 IV 失败: %w", err)
	}
	sealed := k.aead.Seal(iv, iv, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt 解密 Encrypt 的输出
func (k *Key) Decrypt(encoded string) ([]byte, error) {
	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCiphertext, err)
	}
	if len(combined) < IVSize+k.aead.Overhead() {
		return nil, ErrCiphertext
	}
	iv, data := combined[:IVSize], combined[IVSize:]
	plain, err := k.aead.Open(nil, iv, data, nil)
	if err != nil {
		return nil, ErrCiphertext
	}
	return plain, nil
}
