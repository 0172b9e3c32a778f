package cache

// Keyer derives cache keys.
type Keyer interface {
	// VariantKey keys a generated batch of one source image.
	VariantKey(imageHash string, opts VariantKeyOpts) string
	// PaletteKey keys a palette report of one source image.
	PaletteKey(imageHash string, opts PaletteKeyOpts) string
}

// VariantKeyOpts lists everything that changes a generated batch.
type VariantKeyOpts struct {
	Seed        int64   `json:"seed"`
	HowMany     int     `json:"how_many"`
	MinHueShift float64 `json:"min_hue_shift"`
	MaxHueShift float64 `json:"max_hue_shift"`
	HowHueShift float64 `json:"how_hue_shift"`
	Format      string  `json:"format"`
}

// PaletteKeyOpts lists everything that changes a palette report.
type PaletteKeyOpts struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// DefaultKeyer produces keys of the form kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// VariantKey implements Keyer.
func (DefaultKeyer) VariantKey(imageHash string, opts VariantKeyOpts) string {
	return hashKey("variants", imageHash, opts)
}

// PaletteKey implements Keyer.
func (DefaultKeyer) PaletteKey(imageHash string, opts PaletteKeyOpts) string {
	return hashKey("palette", imageHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, giving callers such as
// the HTTP API their own namespace in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// VariantKey implements Keyer.
func (k *ScopedKeyer) VariantKey(imageHash string, opts VariantKeyOpts) string {
	return k.prefix + k.inner.VariantKey(imageHash, opts)
}

// PaletteKey implements Keyer.
func (k *ScopedKeyer) PaletteKey(imageHash string, opts PaletteKeyOpts) string {
	return k.prefix + k.inner.PaletteKey(imageHash, opts)
}
