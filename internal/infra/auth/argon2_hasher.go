// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"pulpit/config"
	"pulpit/internal/domain/service"
	"pulpit/internal/errors"
)

const (
	algorithmID = "argon2id"

	// Cost defaults: 64 MiB memory, 3 passes, 4 lanes.
	defaultMemoryKiB   uint32 = 64 * 1024
	defaultTime        uint32 = 3
	defaultParallelism uint8  = 4

	saltLength = 16
	keyLength  = 32
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface
// using Argon2id with PHC-formatted output.
type argon2Hasher struct {
	memory      uint32
	time        uint32
	parallelism uint8
}

// NewArgon2Hasher is the constructor for argon2Hasher. Cost parameters come
// from config when set; zero values fall back to the service defaults.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	hasher := &argon2Hasher{
		memory:      defaultMemoryKiB,
		time:        defaultTime,
		parallelism: defaultParallelism,
	}

	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.Argon2Memory > 0 {
			hasher.memory = cfg.Auth.Argon2Memory
		}
		if cfg.Auth.Argon2Time > 0 {
			hasher.time = cfg.Auth.Argon2Time
		}
		if cfg.Auth.Argon2Parallelism > 0 {
			hasher.parallelism = cfg.Auth.Argon2Parallelism
		}
	}

	return hasher
}

// Hash generates a salted Argon2id hash from a plaintext password and
// encodes it as a PHC string ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
// The plaintext is never logged.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Wrap(err, "failed to read salt from entropy source")
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.parallelism, keyLength)

	encoded := fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.memory,
		h.time,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify compares a plaintext password against a PHC-encoded hash in
// constant time. A malformed hash surfaces as an error, never as false:
// callers must be able to tell "ran and mismatched" from "could not run".
func (h *argon2Hasher) Verify(hash, password string) (bool, error) {
	parsed, err := parsePHC(hash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		parsed.salt,
		parsed.time,
		parsed.memory,
		parsed.parallelism,
		uint32(len(parsed.key)),
	)

	return subtle.ConstantTimeCompare(computed, parsed.key) == 1, nil
}

type parsedPHC struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func parsePHC(encoded string) (*parsedPHC, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.New("malformed password hash")
	}

	if parts[1] != algorithmID {
		return nil, errors.Errorf("unsupported hash algorithm %q", parts[1])
	}

	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if !strings.HasPrefix(parts[2], "v=") || err != nil {
		return nil, errors.New("malformed argon2 version")
	}
	if version != argon2.Version {
		return nil, errors.Errorf("unsupported argon2 version %d", version)
	}

	parsed := &parsedPHC{}
	if err := parseCostParams(parts[3], parsed); err != nil {
		return nil, err
	}

	if parsed.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, errors.New("malformed salt encoding")
	}
	if parsed.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, errors.New("malformed hash encoding")
	}
	if len(parsed.salt) == 0 || len(parsed.key) == 0 {
		return nil, errors.New("empty salt or hash")
	}

	return parsed, nil
}

func parseCostParams(part string, dst *parsedPHC) error {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return errors.New("malformed cost parameters")
	}

	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return errors.New("malformed cost parameter entry")
		}

		value, err := strconv.ParseUint(kv[1], 10, 32)
		if err != nil || value == 0 {
			return errors.Errorf("invalid cost parameter %q", kv[0])
		}

		switch kv[0] {
		case "m":
			dst.memory = uint32(value)
		case "t":
			dst.time = uint32(value)
		case "p":
			if value > 255 {
				return errors.New("invalid parallelism parameter")
			}
			dst.parallelism = uint8(value)
		default:
			return errors.Errorf("unsupported cost parameter %q", kv[0])
		}
	}

	if dst.memory == 0 || dst.time == 0 || dst.parallelism == 0 {
		return errors.New("missing cost parameters")
	}

	return nil
}
