package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"train-freight-service/internal/domain"
	"train-freight-service/internal/scenario"
	"train-freight-service/internal/services"
)

// freightcli is an interactive console for building a network and running
// deliveries without the HTTP server. One entity per line, comma separated;
// X runs the simulation against the current world.
func main() {
	// A missing .env is fine for the console.
	_ = godotenv.Load()

	world := domain.NewWorld()

	if path := os.Getenv("SCENARIO_PATH"); strings.TrimSpace(path) != "" {
		sc, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := sc.Apply(world); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Loaded scenario from %s\n", path)
	}

	showOptions()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		world = handle(world, line)
	}
}

func showOptions() {
	fmt.Println("Select options below")
	fmt.Println("[N] Station input  [ ex: N,A where A=name ]")
	fmt.Println("[E] Edge input     [ ex: E,E1,A,B,30 where E1=name, A=station1, B=station2, 30=travel time ]")
	fmt.Println("[T] Train input    [ ex: T,Q1,6,B where Q1=name, 6=capacity, B=station location ]")
	fmt.Println("[P] Package input  [ ex: P,K1,5,A,C where K1=name, 5=weight, A=origin, C=destination ]")
	fmt.Println("[X] deliver packages")
	fmt.Println("[C] clear data")
	fmt.Println("Any other key shows the options")
}

func handle(world *domain.World, line string) *domain.World {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	// Only the command letter is case-insensitive; entity names are kept
	// exactly as entered.
	switch strings.ToUpper(fields[0]) {
	case "N":
		if len(fields) != 2 || fields[1] == "" {
			fmt.Println("Invalid station entry")
			return world
		}
		report(world.AddStation(fields[1]))

	case "E":
		if len(fields) != 5 || fields[1] == "" {
			fmt.Println("Invalid edge entry")
			return world
		}
		minutes, ok := parseUint(fields[4], "travel time")
		if !ok {
			return world
		}
		report(world.AddEdge(fields[1], fields[2], fields[3], domain.Minutes(minutes)))

	case "T":
		if len(fields) != 4 || fields[1] == "" {
			fmt.Println("Invalid train entry")
			return world
		}
		capacity, ok := parseUint(fields[2], "capacity")
		if !ok {
			return world
		}
		report(world.AddTrain(fields[1], domain.Kilograms(capacity), fields[3]))

	case "P":
		if len(fields) != 5 || fields[1] == "" {
			fmt.Println("Invalid package entry")
			return world
		}
		weight, ok := parseUint(fields[2], "weight")
		if !ok {
			return world
		}
		report(world.AddPackage(fields[1], domain.Kilograms(weight), fields[3], fields[4]))

	case "X":
		sim := services.NewSimulation(world, os.Stdout)
		total := sim.Run()
		fmt.Printf("completed delivery in: %d minutes\n", total)

	case "C":
		world = domain.NewWorld()
		fmt.Println("Cleared")

	default:
		showOptions()
	}
	return world
}

func parseUint(s, what string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		fmt.Printf("Invalid %s\n", what)
		return 0, false
	}
	return uint(v), true
}

func report(err error) {
	if err != nil {
		fmt.Println(err)
	}
}
