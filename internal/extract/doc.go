// Package extract wraps the external content-extraction and markup
// conversion collaborators behind small interfaces.
//
// The pipeline depends on the Extractor and Converter interfaces, not
// on the libraries, so tests can substitute deterministic fakes and the
// underlying algorithms remain swappable black boxes.
package extract
