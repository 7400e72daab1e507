// Package prompt collects run settings interactively before an analysis starts.
package prompt

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// Builder asks for whatever the settings are missing: the motif parameters when
// unset, then any number of taxonomy and habitat filters. Invalid or duplicate
// filter selections are reported and asked again.
type Builder struct {
	in  *bufio.Reader
	out io.Writer
}

// NewBuilder creates a builder reading answers from in and writing prompts to out.
func NewBuilder(in io.Reader, out io.Writer) *Builder {
	return &Builder{in: bufio.NewReader(in), out: out}
}

// Complete fills settings in place.
func (b *Builder) Complete(settings *config.RunSettings) error {
	if settings.MinGenomes < 1 {
		q, err := b.askInt("please enter the minimal number of occurrences of the cog in different genomes (q) ")
		if err != nil {
			return err
		}
		settings.MinGenomes = q
	}
	if settings.MotifLength < 1 {
		d, err := b.askInt("please enter the length of the word (d) ")
		if err != nil {
			return err
		}
		settings.MotifLength = d
	}
	for strings.TrimSpace(settings.TargetMarker) == "" || settings.TargetMarker == model.UnknownMarker {
		cogx, err := b.ask("please enter the cog you want to query (cogx) ")
		if err != nil {
			return err
		}
		settings.TargetMarker = strings.TrimSpace(cogx)
	}

	taxonomy, err := b.taxonomyFilters(settings.TaxonomyFilters)
	if err != nil {
		return err
	}
	settings.TaxonomyFilters = taxonomy

	habitat, err := b.habitatFilters(settings.HabitatFilters)
	if err != nil {
		return err
	}
	settings.HabitatFilters = habitat
	return nil
}

func (b *Builder) taxonomyFilters(existing []config.FilterSpec) ([]config.FilterSpec, error) {
	chosen := make(map[model.TaxonomyField]bool)
	for _, spec := range existing {
		if f, err := model.ParseTaxonomyField(spec.Field); err == nil {
			chosen[f] = true
		}
	}

	filters := append([]config.FilterSpec{}, existing...)
	for {
		more, err := b.confirm("Do you want to add a filter from the Taxa file to the COG search? y/n ")
		if err != nil || !more {
			return filters, err
		}

		b.printMenu(taxonomyMenu())
		selector, err := b.ask("Please write the number of the filter requested\n")
		if err != nil {
			return nil, err
		}
		field, err := model.ParseTaxonomyField(selector)
		if err != nil {
			fmt.Fprintf(b.out, "Invalid number written: %v\n", err)
			continue
		}
		if chosen[field] {
			fmt.Fprint(b.out, "This filter has already been chosen\n\n")
			continue
		}

		value, err := b.askValue(fmt.Sprintf("enter the value of the filter wanted for %s: ", field), func(v string) error {
			_, err := model.NewTaxonomyCriterion(field, v)
			return err
		})
		if err != nil {
			return nil, err
		}
		chosen[field] = true
		filters = append(filters, config.FilterSpec{Field: strconv.Itoa(field.Index()), Value: value})
	}
}

func (b *Builder) habitatFilters(existing []config.FilterSpec) ([]config.FilterSpec, error) {
	chosen := make(map[model.HabitatField]bool)
	for _, spec := range existing {
		if f, err := model.ParseHabitatField(spec.Field); err == nil {
			chosen[f] = true
		}
	}

	filters := append([]config.FilterSpec{}, existing...)
	for {
		more, err := b.confirm("Do you want to add a filter from the Habitat file to the COG search? y/n ")
		if err != nil || !more {
			return filters, err
		}

		b.printMenu(habitatMenu())
		selector, err := b.ask("Please write the number of the filter requested\n")
		if err != nil {
			return nil, err
		}
		field, err := model.ParseHabitatField(selector)
		if err != nil {
			fmt.Fprintf(b.out, "Invalid number written: %v\n", err)
			continue
		}
		if chosen[field] {
			fmt.Fprint(b.out, "This filter has already been chosen\n\n")
			continue
		}

		question := fmt.Sprintf("enter the value of the filter wanted for %s: ", field)
		if field.Numeric() {
			question = fmt.Sprintf("enter the value number of the filter wanted for %s: ", field)
		}
		value, err := b.askValue(question, func(v string) error {
			_, err := model.NewHabitatCriterion(field, v)
			return err
		})
		if err != nil {
			return nil, err
		}
		chosen[field] = true
		filters = append(filters, config.FilterSpec{Field: strconv.Itoa(field.Index()), Value: value})
	}
}

type menuEntry struct {
	number int
	name   string
}

func taxonomyMenu() []menuEntry {
	var entries []menuEntry
	for _, f := range model.TaxonomyFields() {
		entries = append(entries, menuEntry{f.Index(), f.String()})
	}
	return entries
}

func habitatMenu() []menuEntry {
	var entries []menuEntry
	for _, f := range model.HabitatFields() {
		entries = append(entries, menuEntry{f.Index(), f.String()})
	}
	return entries
}

func (b *Builder) printMenu(entries []menuEntry) {
	for _, e := range entries {
		fmt.Fprintf(b.out, "%d: %s\n", e.number, e.name)
	}
	fmt.Fprint(b.out, "\n\n")
}

// ask prints question and returns the next answer, trimmed. A final answer
// without a trailing newline is accepted.
func (b *Builder) ask(question string) (string, error) {
	fmt.Fprint(b.out, question)
	line, err := b.in.ReadString('\n')
	if err != nil && !(stderrors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// askInt repeats question until the answer is a positive integer.
func (b *Builder) askInt(question string) (int, error) {
	for {
		answer, err := b.ask(question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 {
			fmt.Fprintf(b.out, "Invalid value '%s'. Please enter a positive whole number.\n", answer)
			continue
		}
		return n, nil
	}
}

// askValue repeats question until validate accepts the answer.
func (b *Builder) askValue(question string, validate func(string) error) (string, error) {
	for {
		answer, err := b.ask(question)
		if err != nil {
			return "", err
		}
		if err := validate(answer); err != nil {
			fmt.Fprintf(b.out, "Invalid value: %v\n", err)
			continue
		}
		return answer, nil
	}
}

// confirm treats "y" in any case as yes; anything else, including end of input, is no.
func (b *Builder) confirm(question string) (bool, error) {
	answer, err := b.ask(question)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}
