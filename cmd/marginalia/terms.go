package main

import "fmt"

// Run executes the terms command.
func (c *TermsCmd) Run(deps *Dependencies) error {
	reg, err := deps.Registries(c.Glossary).Load(deps.Ctx, c.Glossary)
	if err != nil {
		return err
	}

	if reg.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "no terms defined")
		return nil
	}

	for _, t := range reg.Terms() {
		fmt.Fprintf(deps.Stdout, "%s\t#%s\t%s\n", t.Name, t.Anchor, t.Preview)
	}
	fmt.Fprintf(deps.Stdout, "%d term(s)\n", reg.Len())
	return nil
}
