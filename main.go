package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"acb/formula-compiler/formulas"
)

func compileOne(formula string) {
	root, err := formulas.Parse(formula)
	if err != nil {
		log.Printf("%s: %s", formula, err)
		return
	}
	code, err := root.Emit(nil)
	if err != nil {
		log.Printf("%s: %s", formula, err)
		return
	}
	fmt.Println(code)
	deps := formulas.Dependencies(root)
	if len(deps) > 0 {
		fmt.Printf("# depends on %s\n", strings.Join(deps, ", "))
	}
}

func printRenames() {
	renames := formulas.Renames()
	names := maps.Keys(renames)
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s -> %s\n", name, renames[name])
	}
}

func main() {
	log.SetFlags(0)

	args := os.Args[1:]
	if len(args) == 1 && args[0] == "-renames" {
		printRenames()
		return
	}
	if len(args) > 0 {
		for _, formula := range args {
			compileOne(formula)
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		formula := strings.TrimSpace(scanner.Text())
		if formula != "" {
			compileOne(formula)
		}
	}
	check(scanner.Err())
}
