package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "recommend":
		recCmd := flag.NewFlagSet("recommend", flag.ExitOnError)
		queryIndex := recCmd.Int("i", defaultQueryIndex, "index of the track to base recommendations on")
		count := recCmd.Int("n", defaultRecommendations, "number of songs to recommend")
		recCmd.Parse(os.Args[2:])
		recommend(*queryIndex, *count)

	case "build":
		buildCmd := flag.NewFlagSet("build", flag.ExitOnError)
		force := buildCmd.Bool("force", false, "recompute even when cached artifacts exist")
		buildCmd.BoolVar(force, "f", false, "recompute even when cached artifacts exist (shorthand)")
		buildCmd.Parse(os.Args[2:])
		build(*force)

	case "stats":
		stats()

	case "erase":
		target := "cache"
		if len(os.Args) > 2 {
			target = os.Args[2]
		}
		switch target {
		case "cache", "db", "all":
			erase(target)
		default:
			fmt.Println("usage: song-recommender erase [cache | db | all]")
			os.Exit(1)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: song-recommender <command>")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  recommend [-i index] [-n count]  build or load the index, then print a playlist")
	fmt.Println("  build     [-f]                   extract features and persist the index")
	fmt.Println("  stats                            show catalog and cache status")
	fmt.Println("  erase     [cache | db | all]     clear cached artifacts and/or the catalog")
}
