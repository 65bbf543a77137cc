// Package mmdp solves the Max-Min Diversity Problem: choose p of n items so
// that the smallest pairwise distance among the chosen items is as large
// as possible.
//
// What is inside?
//
//	A single-threaded GRASP with path relinking, built from small packages
//	that can also be used on their own:
//		• Constructive heuristics: CGR (restrict by score, pick at random)
//		  and CGR2 (restrict at random, pick greedily)
//		• Local search: first improvement, best improvement, IMLS
//		  (tie-aware search that walks across objective plateaus)
//		• Elite archive: bounded, quality-raising, diversity-preserving
//		• Greedy path relinking with O(1) swap evaluation per candidate
//		• A time-budgeted driver and a multi-seed experiment harness
//
// Every random decision draws from an explicit *rand.Rand, so a seed fixes
// a run completely (up to wall-clock budgets).
//
// Layout (leaves first):
//
//	matrix/        dense distance storage, validators, Euclidean builder
//	instance/      immutable (n, p, d) problem instance + file readers
//	randutil/      seeded generators, stream derivation, shuffles
//	solution/      selection with an incrementally maintained objective
//	construct/     candidate list, CGR, CGR2
//	localsearch/   FirstImprovement, BestImprovement, IMLS
//	elite/         elite archive
//	pathrelink/    greedy path relinking (one-way and bidirectional)
//	grasp/         Constructing → Relinking → Done driver
//	experiment/    seeded runs, summary statistics, CSV reports
//	cmd/mdp/       command-line entry point
//
// Quick example:
//
//	d, _ := matrix.Euclidean(points)
//	inst, _ := instance.New(d, p)
//	opts := grasp.DefaultOptions()
//	opts.TimeLimit = 10 * time.Second
//	res, _ := grasp.Run(inst, opts)
//	fmt.Println(res.Best.Objective(), res.Best.Items())
//
//	go install github.com/katalvlaran/mmdp/cmd/mdp@latest
package mmdp
