// fdsh is an interactive shell for poking at fdio handles.
//
// Usage:
//
//	fdsh [flags]
//
// Flags:
//
//	-c, --config     Config file path (HuJSON, default ~/.fdsh.json if present)
//	-H, --history    History file path (default ~/.fdsh_history)
//
// Commands (in REPL):
//
//	open <name> <path> <mode>       Open a file under a handle name
//	adopt <name> <fd>               Adopt an already-open descriptor
//	read <name> <n>                 Read up to n bytes
//	readv <name> <n> [n...]         Vectored read into buffers of the given sizes
//	write <name> <text...>          Write the arguments joined by spaces
//	writev <name> <text> [text...]  Vectored write, one buffer per argument
//	move <src> <dst>                Transfer ownership src -> dst
//	close <name>                    Close a handle
//	ls                              List handles
//	help                            Show this help
//	exit / quit / q                 Exit
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/calvinalkan/fdio"
)

// Config holds fdsh settings loaded from the optional HuJSON config file.
type Config struct {
	HistoryFile string `json:"history_file,omitempty"`
	Perm        string `json:"perm,omitempty"` // octal, applied to created files
	Prompt      string `json:"prompt,omitempty"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Perm:   "0644",
		Prompt: "fdsh> ",
	}
}

// ConfigFileName is the default config file looked up in the home directory.
const ConfigFileName = ".fdsh.json"

// LoadConfig reads path (or the default location when path is empty) and
// overlays it onto the defaults. A missing default-location file is not an
// error; an explicitly requested file must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}

		path = filepath.Join(home, ConfigFileName)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// HuJSON allows comments and trailing commas; standardize to plain JSON.
	std, err := hujson.Standardize(raw)
	if err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}

	if cfg.Perm == "" {
		cfg.Perm = DefaultConfig().Perm
	}

	return cfg, nil
}

func main() {
	var configPath, historyPath string

	flag.StringVarP(&configPath, "config", "c", "", "config file path")
	flag.StringVarP(&historyPath, "history", "H", "", "history file path")
	flag.Parse()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if historyPath != "" {
		cfg.HistoryFile = historyPath
	}

	sh := &Shell{
		cfg:     cfg,
		handles: map[string]*fdio.Handle{},
	}

	if err := sh.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// Shell is the interactive command loop.
type Shell struct {
	cfg     Config
	handles map[string]*fdio.Handle
	liner   *liner.State
}

var commands = []string{
	"open", "adopt", "read", "readv", "write", "writev",
	"move", "close", "ls", "help", "exit", "quit",
}

// historyFile returns the path to the history file.
func (s *Shell) historyFile() string {
	if s.cfg.HistoryFile != "" {
		return s.cfg.HistoryFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".fdsh_history")
}

// Run starts the REPL loop.
func (s *Shell) Run() error {
	s.liner = liner.NewLiner()
	defer s.liner.Close()

	s.liner.SetCtrlCAborts(true)
	s.liner.SetCompleter(s.completer)

	if f, err := os.Open(s.historyFile()); err == nil {
		s.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("fdsh - fdio handle shell (vectored atomic: %v)\n", fdio.VectoredAtomic)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	defer s.closeAll()

	for {
		line, err := s.liner.Prompt(s.cfg.Prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")

			s.saveHistory()

			return nil

		case "help", "?":
			s.printHelp()

		case "open":
			s.cmdOpen(args)

		case "adopt":
			s.cmdAdopt(args)

		case "read":
			s.cmdRead(args)

		case "readv":
			s.cmdReadv(args)

		case "write":
			s.cmdWrite(args)

		case "writev":
			s.cmdWritev(args)

		case "move":
			s.cmdMove(args)

		case "close":
			s.cmdClose(args)

		case "ls", "list":
			s.cmdLs()

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	s.saveHistory()

	return nil
}

// saveHistory persists command history to disk.
func (s *Shell) saveHistory() {
	if path := s.historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			s.liner.WriteHistory(f)
			f.Close()
		}
	}
}

// closeAll releases every remaining handle on exit.
func (s *Shell) closeAll() {
	for name, h := range s.handles {
		if err := h.Close(); err != nil {
			fmt.Printf("close %s: %v\n", name, err)
		}
	}
}

// completer provides tab completion for command names.
func (s *Shell) completer(line string) []string {
	var out []string

	for _, c := range commands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}

	return out
}

func (s *Shell) printHelp() {
	fmt.Println(`Commands:
  open <name> <path> <mode>       Open a file (mode: r r+ w w+ a a+, optional b suffix)
  adopt <name> <fd>               Adopt an already-open descriptor
  read <name> <n>                 Read up to n bytes
  readv <name> <n> [n...]         Vectored read into buffers of the given sizes
  write <name> <text...>          Write the arguments joined by spaces
  writev <name> <text> [text...]  Vectored write, one buffer per argument
  move <src> <dst>                Transfer ownership src -> dst
  close <name>                    Close a handle
  ls                              List handles
  exit                            Exit`)
}

// lookup fetches a named handle, printing the error the REPL way.
func (s *Shell) lookup(name string) (*fdio.Handle, bool) {
	h, ok := s.handles[name]
	if !ok {
		fmt.Printf("no handle named %q (see 'ls')\n", name)
	}

	return h, ok
}

func (s *Shell) cmdOpen(args []string) {
	if len(args) != 3 {
		fmt.Println("usage: open <name> <path> <mode>")

		return
	}

	name, path, token := args[0], args[1], args[2]

	if _, exists := s.handles[name]; exists {
		fmt.Printf("handle %q already exists; close it first\n", name)

		return
	}

	mode, err := fdio.ParseMode(token)
	if err != nil {
		fmt.Println(err)

		return
	}

	permBits, err := strconv.ParseUint(s.cfg.Perm, 8, 32)
	if err != nil {
		fmt.Printf("invalid perm %q in config: %v\n", s.cfg.Perm, err)

		return
	}

	h, err := fdio.OpenFile(path, mode, os.FileMode(permBits))
	if err != nil {
		fmt.Println(err)

		return
	}

	s.handles[name] = h
	fmt.Printf("%s: %s (%s) raw=%v\n", name, path, mode, h.Raw())
}

func (s *Shell) cmdAdopt(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: adopt <name> <fd>")

		return
	}

	name := args[0]

	if _, exists := s.handles[name]; exists {
		fmt.Printf("handle %q already exists; close it first\n", name)

		return
	}

	raw, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Printf("invalid descriptor %q: %v\n", args[1], err)

		return
	}

	s.handles[name] = fdio.Adopt(fdio.Raw(raw))
	fmt.Printf("%s: adopted raw=%d\n", name, raw)
}

func (s *Shell) cmdRead(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: read <name> <n>")

		return
	}

	h, ok := s.lookup(args[0])
	if !ok {
		return
	}

	size, err := strconv.Atoi(args[1])
	if err != nil || size < 0 {
		fmt.Printf("invalid size %q\n", args[1])

		return
	}

	buf := make([]byte, size)

	n, err := h.Read(buf)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("%d bytes: %q\n", n, buf[:n])
}

func (s *Shell) cmdReadv(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: readv <name> <n> [n...]")

		return
	}

	h, ok := s.lookup(args[0])
	if !ok {
		return
	}

	bufs := make([][]byte, 0, len(args)-1)

	for _, a := range args[1:] {
		size, err := strconv.Atoi(a)
		if err != nil || size < 0 {
			fmt.Printf("invalid size %q\n", a)

			return
		}

		bufs = append(bufs, make([]byte, size))
	}

	n, err := h.Readv(bufs)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("%d bytes total\n", n)

	remaining := n

	for i, b := range bufs {
		filled := min(remaining, len(b))
		remaining -= filled
		fmt.Printf("  buf[%d]: %q\n", i, b[:filled])
	}
}

func (s *Shell) cmdWrite(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: write <name> <text...>")

		return
	}

	h, ok := s.lookup(args[0])
	if !ok {
		return
	}

	n, err := h.Write([]byte(strings.Join(args[1:], " ")))
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("%d bytes written\n", n)
}

func (s *Shell) cmdWritev(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: writev <name> <text> [text...]")

		return
	}

	h, ok := s.lookup(args[0])
	if !ok {
		return
	}

	bufs := make([][]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		bufs = append(bufs, []byte(a))
	}

	n, err := h.Writev(bufs)
	if err != nil {
		fmt.Println(err)

		return
	}

	atomicNote := ""
	if !fdio.VectoredAtomic {
		atomicNote = " (emulated, not atomic)"
	}

	fmt.Printf("%d bytes written across %d buffers%s\n", n, len(bufs), atomicNote)
}

func (s *Shell) cmdMove(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: move <src> <dst>")

		return
	}

	src, dst := args[0], args[1]

	h, ok := s.lookup(src)
	if !ok {
		return
	}

	if _, exists := s.handles[dst]; exists {
		fmt.Printf("handle %q already exists; close it first\n", dst)

		return
	}

	s.handles[dst] = h.Move()
	delete(s.handles, src)

	fmt.Printf("moved %s -> %s (source now closed: %v)\n", src, dst, !h.IsOpen())
}

func (s *Shell) cmdClose(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: close <name>")

		return
	}

	h, ok := s.lookup(args[0])
	if !ok {
		return
	}

	delete(s.handles, args[0])

	if err := h.Close(); err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("%s closed\n", args[0])
}

func (s *Shell) cmdLs() {
	if len(s.handles) == 0 {
		fmt.Println("no open handles")

		return
	}

	names := make([]string, 0, len(s.handles))
	for name := range s.handles {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		h := s.handles[name]

		path := h.Name()
		if path == "" {
			path = "(adopted)"
		}

		fmt.Printf("  %-12s raw=%-6v %s\n", name, h.Raw(), path)
	}
}
