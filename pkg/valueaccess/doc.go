/*
Package valueaccess implements value access (C2): reading and writing a
Variable node's current value, whichever of the two value sources
backs it, with NumericRange sub-selection and the onRead/onWrite callback
hooks layered on top.

pkg/store owns the value-source and callback fields; this package is the
only caller that's supposed to exercise them during normal request
processing, keeping the read/write state-machine out of the store itself.
*/
package valueaccess
