// Package config provides puzzle storage for the pipe maze solver.
//
// The config package handles:
//   - Loading puzzle layouts from plain text files
//   - Layout validation through the engine
//   - Puzzle discovery and listing
//   - Caching parsed puzzles in a bounded LRU cache
//
// Puzzle Format:
//
// Puzzles are stored as .txt files in the puzzles directory, one grid row per
// line. The file name without extension is the puzzle ID:
//
//	.....
//	.S-7.
//	.|.|.
//	.L-J.
//	.....
//
// Usage:
//
//	manager, err := config.NewManager("puzzles")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	puzzle, err := manager.LoadPuzzle("square")
//	puzzles, err := manager.ListPuzzles()
package config
