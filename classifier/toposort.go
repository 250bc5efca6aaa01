package classifier

import (
	"fmt"
	"sort"
)

// topologicalSort orders classifiers so that every classifier appears after
// all classifiers whose output it requires, using Kahn's algorithm. Ties
// (multiple classifiers simultaneously ready to run) are broken
// alphabetically by output label, so the same classifier set always
// produces the same order regardless of registration order.
func topologicalSort(classifiers []Classifier) ([]Classifier, error) {
	byLabel := make(map[string]Classifier, len(classifiers))
	for _, c := range classifiers {
		if existing, ok := byLabel[c.Output()]; ok {
			return nil, fmt.Errorf("classifier: duplicate output label %q (%T and %T)", c.Output(), existing, c)
		}
		byLabel[c.Output()] = c
	}

	for _, c := range classifiers {
		for _, req := range c.Requires() {
			if _, ok := byLabel[req]; !ok {
				return nil, fmt.Errorf("classifier: %q requires undeclared label %q", c.Output(), req)
			}
		}
	}

	remaining := make(map[string]int, len(classifiers))
	for _, c := range classifiers {
		remaining[c.Output()] = len(c.Requires())
	}

	dependents := make(map[string][]string)
	for _, c := range classifiers {
		for _, req := range c.Requires() {
			dependents[req] = append(dependents[req], c.Output())
		}
	}

	var ready []string
	for label, n := range remaining {
		if n == 0 {
			ready = append(ready, label)
		}
	}
	sort.Strings(ready)

	var order []Classifier
	for len(ready) > 0 {
		sort.Strings(ready)
		label := ready[0]
		ready = ready[1:]
		order = append(order, byLabel[label])

		next := append([]string(nil), dependents[label]...)
		sort.Strings(next)
		for _, dep := range next {
			remaining[dep]--
			if remaining[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(classifiers) {
		var stuck []string
		for label, n := range remaining {
			if n > 0 {
				stuck = append(stuck, label)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("classifier: circular dependency detected among labels: %v", stuck)
	}

	return order, nil
}
