package models

// MediaKind discriminates the media attachment variants of a post.
type MediaKind string

const (
	// MediaNone indicates a text-only post.
	MediaNone MediaKind = "none"
	// MediaImage indicates an image attachment.
	MediaImage MediaKind = "image"
	// MediaVideo indicates a video attachment.
	MediaVideo MediaKind = "video"
)

// Media is a tagged variant: a URL is carried only when Kind is image or
// video. Use the constructors below; the zero value is MediaNone.
type Media struct {
	kind MediaKind
	url  string
}

// NoMedia returns the empty media variant.
func NoMedia() Media {
	return Media{kind: MediaNone}
}

// ImageMedia returns an image attachment. An empty URL degrades to NoMedia.
func ImageMedia(url string) Media {
	if url == "" {
		return NoMedia()
	}
	return Media{kind: MediaImage, url: url}
}

// VideoMedia returns a video attachment. An empty URL degrades to NoMedia.
func VideoMedia(url string) Media {
	if url == "" {
		return NoMedia()
	}
	return Media{kind: MediaVideo, url: url}
}

// Kind reports the media variant.
func (m Media) Kind() MediaKind {
	if m.kind == "" {
		return MediaNone
	}
	return m.kind
}

// URL returns the attachment URL and whether media is present.
func (m Media) URL() (string, bool) {
	if m.Kind() == MediaNone {
		return "", false
	}
	return m.url, true
}

// Present reports whether the post carries any media.
func (m Media) Present() bool {
	return m.Kind() != MediaNone
}

// Listing is the trade-status variant of a post: either not for sale, or
// for sale at a positive price. The zero value is not for sale.
type Listing struct {
	forSale bool
	price   int
}

// NotForSale returns the unlisted variant.
func NotForSale() Listing {
	return Listing{}
}

// ForSale lists the post at the given price. Non-positive prices are
// rejected and degrade to NotForSale.
func ForSale(price int) Listing {
	if price <= 0 {
		return NotForSale()
	}
	return Listing{forSale: true, price: price}
}

// Price returns the asking price and whether the post is for sale.
func (l Listing) Price() (int, bool) {
	if !l.forSale {
		return 0, false
	}
	return l.price, true
}

// IsForSale reports whether the post can be purchased with credits.
func (l Listing) IsForSale() bool {
	return l.forSale
}
