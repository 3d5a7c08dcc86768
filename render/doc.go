// Package render turns the item stream of an encoded form into HTML.
//
// The markup keeps entry names exactly as the encoder produced them, so a
// browser submission of the page decodes with pathcodec.Decoder. Booleans
// render as a checkbox followed by a hidden fallback; unsigned numbers get
// min="0" and characters maxlength="1".
package render
