// Package i18n loads translated alert messages and renders them with
// interpolation parameters.
//
// Catalogs live in locales/<locale>/<namespace>.yaml:
//
//	locale: en-US
//	namespace: comic-books
//	messages:
//	  comic-books.load-failed: "Failed to load comic books."
//
// Lookups fall back to en-US and then to the key itself.
package i18n
