package model

import (
	"fmt"
	"time"
)

// StorageClass designates the category of storage a blob lives in.
// Each class maps to its own bucket namespace in the backing store.
type StorageClass string

const (
	// StorageClassCorpus holds fuzzing corpus inputs.
	StorageClassCorpus StorageClass = "corpus"
	// StorageClassCrashes holds crashing inputs found during fuzzing.
	StorageClassCrashes StorageClass = "crashes"
	// StorageClassReports holds crash analysis reports.
	StorageClassReports StorageClass = "reports"
)

// ValidateStorageClass returns the typed StorageClass value or an error for unknown classes.
func ValidateStorageClass(s string) (StorageClass, error) {
	switch StorageClass(s) {
	case StorageClassCorpus:
		return StorageClassCorpus, nil
	case StorageClassCrashes:
		return StorageClassCrashes, nil
	case StorageClassReports:
		return StorageClassReports, nil
	default:
		return "", fmt.Errorf("unknown storage class %q: must be 'corpus', 'crashes', or 'reports'", s)
	}
}

// Permission is the access level granted by a signed URL.
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// ContainerName is a validated container identifier.
type ContainerName string

const (
	containerNameMinLength = 3
	containerNameMaxLength = 63
)

// ValidateContainerName validates s against the container naming grammar and
// returns the typed ContainerName. Container names are 3-63 characters of
// lowercase letters, digits, and hyphens; they must start and end with a
// letter or digit, and consecutive hyphens are not allowed.
func ValidateContainerName(s string) (ContainerName, error) {
	if len(s) < containerNameMinLength || len(s) > containerNameMaxLength {
		return "", fmt.Errorf("container name %q must be between %d and %d characters", s, containerNameMinLength, containerNameMaxLength)
	}
	prevHyphen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			prevHyphen = false
		case c == '-':
			if i == 0 || i == len(s)-1 {
				return "", fmt.Errorf("container name %q must start and end with a lowercase letter or digit", s)
			}
			if prevHyphen {
				return "", fmt.Errorf("container name %q must not contain consecutive hyphens", s)
			}
			prevHyphen = true
		default:
			return "", fmt.Errorf("container name %q contains invalid character %q: only lowercase letters, digits, and hyphens are allowed", s, string(c))
		}
	}
	return ContainerName(s), nil
}

// SignedURLRequest describes a single request for a time-limited signed
// access URL. It is built per inbound request and passed once to the
// blob locator.
type SignedURLRequest struct {
	// Class selects the bucket namespace the container lives in.
	Class StorageClass
	// Container is the validated container holding the blob.
	Container ContainerName
	// Filename names the blob within the container. Opaque; any non-empty value.
	Filename string
	// Permission is the access level the URL grants.
	Permission Permission
	// TTL is how long the signed URL remains valid.
	TTL time.Duration
}
