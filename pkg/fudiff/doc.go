// Package fudiff implements the fuzzy unified diff format: a line-number-free
// patch syntax aimed at machine-generated diffs.
//
// Hunks carry no `-N,M` ranges; they are located inside the target text by
// searching for their surrounding context lines instead. The package exposes
// primitives to parse diff payloads, apply or revert them against arbitrary
// text, generate new diffs, and serialize parsed structures, which makes it
// straightforward to embed in editors, agents, and testing utilities.
package fudiff
