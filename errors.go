// Implement OCB3 as per RFC 7253 - https://tools.ietf.org/html/rfc7253
// Offset Codebook Mode, version 3 - an authenticated-encryption block
// cipher mode.
//
// MIT Licensed.
package ocb3

import "errors"

var ErrInvalidTagLength = errors.New("ocb3: TagLength must be between 8 and 16 bytes inclusive")
var ErrInvalidNonceLength = errors.New("ocb3: NonceLength must be between 1 and 15 bytes inclusive")
var ErrUnsupportedBlockSize = errors.New("ocb3: a 128-bit block cipher is mandatory")
var ErrInvalidSequence = errors.New("ocb3: operation not permitted in the current session phase")
var ErrPendingData = errors.New("ocb3: digest/verify called with unflushed message bytes pending")
var ErrMacMismatch = errors.New("ocb3: authentication failed, tag does not match")
var ErrBlockCipherError = errors.New("ocb3: underlying block cipher reported an error")

/* vim: set noai ts=4 sw=4: */
