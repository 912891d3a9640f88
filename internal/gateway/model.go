package gateway

import "github.com/uptrace/bun"

// siteConfig maps one stored document. The value column carries the document
// serialized as JSON text; no schema is enforced at the storage layer.
type siteConfig struct {
	bun.BaseModel `bun:"table:site_config,alias:sc"`

	Key   string `bun:"key,pk" json:"key"`
	Value string `bun:"value,notnull" json:"value"`
}
