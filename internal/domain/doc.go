// Package domain contains the core domain model for wire profile loading.
//
// The domain is persistence-agnostic: it does not depend on YAML parsing, archive formats,
// or the filesystem. Infra/adapters map into/from these types.
package domain
