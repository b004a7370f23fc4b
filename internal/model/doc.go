// Package model implements the closed-form speculative decoding throughput
// model: expected time per token, speed and speedup for a given cost ratio,
// acceptance probability and speculation batch size, plus the discrete search
// for the speedup-maximizing batch size.
package model
