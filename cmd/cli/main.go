package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ritamzico/pregex"
)

const helpText = `pregex interactive REPL

Commands:
  compile <name> <pattern>   Compile a pattern and store it under <name>
  forget <name>               Remove a compiled pattern
  list                         List all compiled patterns
  use <name>                   Set the active pattern for matching
  match <input>                 Match the active pattern against <input>
  batch <input> [<input> ...]   Match the active pattern against several inputs
  help                          Show this help message
  exit / quit                   Exit the REPL

Pattern examples:
  ^a{5~Geo(0.5)}$
  [abc~Zipf(1.5)]
  ^[a~Cat(a=0.7,.=0.1)]b$
`

func main() {
	patterns := make(map[string]*pregex.NFA)
	var active string

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("pregex — probabilistic regular expression engine")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		if active != "" {
			fmt.Printf("[%s]> ", active)
		} else {
			fmt.Print("> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(helpText)

		case "list":
			if len(patterns) == 0 {
				fmt.Println("(no patterns compiled)")
			} else {
				for name := range patterns {
					marker := " "
					if name == active {
						marker = "*"
					}
					fmt.Printf("  %s %s\n", marker, name)
				}
			}

		case "compile":
			if len(parts) < 3 {
				fmt.Fprintln(os.Stderr, "usage: compile <name> <pattern>")
				continue
			}
			name := parts[1]
			source := strings.Join(parts[2:], " ")
			nfa, err := pregex.Compile(source, "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "error compiling %q: %v\n", source, err)
				continue
			}
			patterns[name] = nfa
			if active == "" {
				active = name
			}
			fmt.Printf("compiled %q as %q (%d states)\n", source, name, nfa.StateCount())

		case "use":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: use <name>")
				continue
			}
			name := parts[1]
			if _, ok := patterns[name]; !ok {
				fmt.Fprintf(os.Stderr, "no pattern named %q\n", name)
				continue
			}
			active = name
			fmt.Printf("active pattern set to %q\n", name)

		case "forget":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: forget <name>")
				continue
			}
			name := parts[1]
			if _, ok := patterns[name]; !ok {
				fmt.Fprintf(os.Stderr, "no pattern named %q\n", name)
				continue
			}
			delete(patterns, name)
			if active == name {
				active = ""
			}
			fmt.Printf("forgot %q\n", name)

		case "match":
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active pattern — use 'compile' or 'use' first")
				continue
			}
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: match <input>")
				continue
			}
			input := strings.Join(parts[1:], " ")
			p, _, err := pregex.MatchLikelihood(patterns[active], input, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "match error: %v\n", err)
			} else if p == nil {
				fmt.Printf("%q: no match\n", input)
			} else {
				fmt.Printf("%q: %.6f\n", input, *p)
			}

		case "batch":
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active pattern — use 'compile' or 'use' first")
				continue
			}
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: batch <input> [<input> ...]")
				continue
			}
			result, err := pregex.Batch(context.Background(), patterns[active], parts[1:])
			if err != nil {
				fmt.Fprintf(os.Stderr, "batch error: %v\n", err)
			} else {
				fmt.Println(result.String())
			}

		default:
			fmt.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
}
