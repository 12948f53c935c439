package moda

// TruncateSummary exposes truncateSummary for tests.
var TruncateSummary = truncateSummary
