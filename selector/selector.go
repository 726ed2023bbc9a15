// Package selector resolves the city a run fetches the forecast for.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"weather-fetcher/datasource"

	log "gopkg.in/inconshreveable/log15.v2"
)

var (
	// ErrEmptyCityList is returned when the configuration lists no cities
	ErrEmptyCityList = errors.New("city list is empty in the configuration file")
	// ErrInvalidSelection is returned for a non-numeric, out of range or unknown choice
	ErrInvalidSelection = errors.New("invalid city choice")
)

// Selector prompts an operator for one of the configured cities
type Selector struct {
	in  *bufio.Reader
	out io.Writer
	log log.Logger
}

// New creates a selector reading answers from in and writing prompts to out
func New(in io.Reader, out io.Writer, logger log.Logger) *Selector {
	return &Selector{
		in:  bufio.NewReader(in),
		out: out,
		log: logger,
	}
}

// Choose lists the configured cities and blocks until the operator picks one
// by its 1-based number.
func (s *Selector) Choose(config *datasource.Config) (string, error) {
	cities := config.Cities
	if len(cities) == 0 {
		s.log.Error("No cities found in configuration.")
		return "", ErrEmptyCityList
	}

	fmt.Fprintln(s.out, "Available cities:")
	for i, city := range cities {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, city)
	}
	fmt.Fprint(s.out, "Enter the number of the city you want to select: ")

	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		s.log.Error("Error in city selection", "err", err)
		return "", fmt.Errorf("%w: no input: %v", ErrInvalidSelection, err)
	}

	city, err := Pick(cities, line)
	if err != nil {
		s.log.Error("Invalid choice. Please select a valid city number.", "input", strings.TrimSpace(line))
		return "", err
	}

	s.log.Info(fmt.Sprintf("City selected: %s", city))
	return city, nil
}

// Resolve selects a configured city by name without prompting
func (s *Selector) Resolve(config *datasource.Config, name string) (string, error) {
	if len(config.Cities) == 0 {
		s.log.Error("No cities found in configuration.")
		return "", ErrEmptyCityList
	}

	for _, city := range config.Cities {
		if strings.EqualFold(city, strings.TrimSpace(name)) {
			s.log.Info(fmt.Sprintf("City selected: %s", city))
			return city, nil
		}
	}

	s.log.Error("City is not in the configured list", "city", name)
	return "", fmt.Errorf("%w: %q is not configured", ErrInvalidSelection, name)
}

// Pick maps a textual 1-based index onto cities
func Pick(cities []string, choice string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, strings.TrimSpace(choice))
	}
	if n < 1 || n > len(cities) {
		return "", fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidSelection, n, len(cities))
	}
	return cities[n-1], nil
}
