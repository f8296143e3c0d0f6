package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken 刷新令牌只保存摘要，Redis 泄露时无法直接拿来使用
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
