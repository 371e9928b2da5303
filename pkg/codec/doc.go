// Package codec provides the CBOR attribute serializer for tracked properties.
//
// Each scalar attribute is written as one CBOR unsigned integer, so a
// property's attributes form a CBOR sequence (RFC 8742) in the order the
// property's adapter appends them. Writer and Reader implement
// core.ScalarWriter and core.ScalarReader.
package codec
