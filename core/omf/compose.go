package omf

import "schemadiff/core/value"

// Composite chains policies. Scalar comparison and object matching come from
// the first policy; rules are looked up in order and the first hit wins.
type Composite struct {
	policies []Policy
}

// Compose returns a Composite over policies. With no policies it behaves
// like Default.
func Compose(policies ...Policy) *Composite {
	if len(policies) == 0 {
		policies = []Policy{Default{}}
	}
	return &Composite{policies: policies}
}

func (c *Composite) Less(a, b *value.Scalar) bool  { return c.policies[0].Less(a, b) }
func (c *Composite) Equal(a, b *value.Scalar) bool { return c.policies[0].Equal(a, b) }

func (c *Composite) SameObject(a, b *value.Object) bool {
	return SameObject(c.policies[0], a, b)
}

func (c *Composite) Rule(f Field) Rule {
	for _, p := range c.policies {
		if r := RuleFor(p, f); r != nil {
			return r
		}
	}
	return nil
}
