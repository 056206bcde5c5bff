// Package metriclist parses the declarative list of attributes to poll.
//
// Each line has the form
//
//	beanId;attributeName[;field1,field2,...]
//
// Lines starting with '#' are comments and blank lines are ignored.
package metriclist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	internalerrors "github.com/Schera-ole/jmx-telegraf/internal/errors"
	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

const (
	fieldSeparator   = ";"
	mappingSeparator = ","
	commentPrefix    = "#"
)

// Load reads the metric list stored at fname.
func Load(fname string) ([]models.BeanAttributeSpec, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("error while opening metric list: %w", err)
	}
	defer file.Close()

	specs, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return specs, nil
}

// Parse reads metric list entries from r, in order.
func Parse(r io.Reader) ([]models.BeanAttributeSpec, error) {
	var specs []models.BeanAttributeSpec

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		spec, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		spec.Line = lineNo
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading metric list: %w", err)
	}
	return specs, nil
}

func parseLine(line string) (models.BeanAttributeSpec, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 2 {
		return models.BeanAttributeSpec{}, fmt.Errorf("%w: expected bean%sattribute, got %q",
			internalerrors.ErrMalformedEntry, fieldSeparator, line)
	}

	spec := models.BeanAttributeSpec{
		Bean:      strings.TrimSpace(parts[0]),
		Attribute: strings.TrimSpace(parts[1]),
	}
	if spec.Bean == "" || spec.Attribute == "" {
		return models.BeanAttributeSpec{}, fmt.Errorf("%w: empty bean or attribute in %q",
			internalerrors.ErrMalformedEntry, line)
	}

	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		spec.Fields = strings.Split(strings.TrimSpace(parts[2]), mappingSeparator)
		for i, f := range spec.Fields {
			spec.Fields[i] = strings.TrimSpace(f)
		}
	}
	return spec, nil
}
