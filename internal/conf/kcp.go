package conf

import (
	"crypto/sha256"
	"fmt"
	"slices"

	"github.com/xtaci/kcp-go/v5"
	"golang.org/x/crypto/pbkdf2"
)

// KCP configures the reliable-UDP stream used when target.network is "kcp".
// The peer must run with the same block, key and mode.
type KCP struct {
	Mode   string `yaml:"mode"`
	MTU    int    `yaml:"mtu"`
	Sndwnd int    `yaml:"sndwnd"`
	Rcvwnd int    `yaml:"rcvwnd"`
	Dshard int    `yaml:"dshard"`
	Pshard int    `yaml:"pshard"`

	Block_ string `yaml:"block"`
	Key    string `yaml:"key"`

	Block kcp.BlockCrypt `yaml:"-"`
}

const kcpKeySalt = "hexprobe-kcp"

var validBlocks = []string{"aes", "aes-128", "aes-192", "salsa20", "blowfish", "twofish", "cast5", "3des", "tea", "xtea", "xor", "sm4", "none"}

func (k *KCP) setDefaults() {
	if k.Mode == "" {
		k.Mode = "fast2"
	}
	if k.MTU == 0 {
		k.MTU = 1350
	}
	if k.Sndwnd == 0 {
		k.Sndwnd = 128
	}
	if k.Rcvwnd == 0 {
		k.Rcvwnd = 512
	}
	if k.Block_ == "" {
		k.Block_ = "aes"
	}
}

func (k *KCP) validate() []error {
	var errors []error

	validModes := []string{"normal", "fast", "fast2", "fast3"}
	if !slices.Contains(validModes, k.Mode) {
		errors = append(errors, fmt.Errorf("KCP mode must be one of: %v", validModes))
	}
	if k.MTU < 50 || k.MTU > 1500 {
		errors = append(errors, fmt.Errorf("KCP MTU must be between 50-1500 bytes"))
	}
	if k.Rcvwnd < 1 || k.Rcvwnd > 65535 {
		errors = append(errors, fmt.Errorf("KCP rcvwnd must be between 1-65535"))
	}
	if k.Sndwnd < 1 || k.Sndwnd > 65535 {
		errors = append(errors, fmt.Errorf("KCP sndwnd must be between 1-65535"))
	}
	if k.Dshard < 0 || k.Pshard < 0 || (k.Dshard == 0) != (k.Pshard == 0) {
		errors = append(errors, fmt.Errorf("KCP dshard/pshard must both be zero or both be positive"))
	}

	if !slices.Contains(validBlocks, k.Block_) {
		errors = append(errors, fmt.Errorf("KCP encryption block must be one of: %v", validBlocks))
		return errors
	}
	if k.Block_ != "none" && len(k.Key) == 0 {
		errors = append(errors, fmt.Errorf("KCP encryption key is required"))
		return errors
	}
	b, err := newBlock(k.Block_, k.Key)
	if err != nil {
		errors = append(errors, err)
	}
	k.Block = b

	return errors
}

// newBlock returns nil for "none"; kcp-go then sends plaintext.
func newBlock(name, key string) (kcp.BlockCrypt, error) {
	if name == "none" {
		return nil, nil
	}
	pass := pbkdf2.Key([]byte(key), []byte(kcpKeySalt), 4096, 32, sha256.New)

	var (
		b   kcp.BlockCrypt
		err error
	)
	switch name {
	case "aes":
		b, err = kcp.NewAESBlockCrypt(pass)
	case "aes-128":
		b, err = kcp.NewAESBlockCrypt(pass[:16])
	case "aes-192":
		b, err = kcp.NewAESBlockCrypt(pass[:24])
	case "salsa20":
		b, err = kcp.NewSalsa20BlockCrypt(pass)
	case "blowfish":
		b, err = kcp.NewBlowfishBlockCrypt(pass)
	case "twofish":
		b, err = kcp.NewTwofishBlockCrypt(pass)
	case "cast5":
		b, err = kcp.NewCast5BlockCrypt(pass[:16])
	case "3des":
		b, err = kcp.NewTripleDESBlockCrypt(pass[:24])
	case "tea":
		b, err = kcp.NewTEABlockCrypt(pass[:16])
	case "xtea":
		b, err = kcp.NewXTEABlockCrypt(pass[:16])
	case "xor":
		b, err = kcp.NewSimpleXORBlockCrypt(pass)
	case "sm4":
		b, err = kcp.NewSM4BlockCrypt(pass[:16])
	default:
		return nil, fmt.Errorf("unsupported KCP block %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create KCP %s block: %w", name, err)
	}
	return b, nil
}
