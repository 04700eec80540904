package soundness

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/attr"
	"github.com/specialistvlad/computedgen/internal/diag"
	"github.com/specialistvlad/computedgen/internal/model"
)

// Check validates s and returns its plan. The plan is nil when any error was
// found; warnings are returned alongside a valid plan.
func Check(s *model.Struct) (*model.Plan, hcl.Diagnostics) {
	c := &checker{
		s:        s,
		plan:     &model.Plan{Struct: s},
		computed: make(map[*model.Field]*model.ComputedField),
	}

	c.partition()
	c.resolveEdges()
	c.resolveDependencies()
	c.checkCollisions()

	if c.diags.HasErrors() {
		return nil, c.diags
	}
	return c.plan, c.diags
}

type checker struct {
	s        *model.Struct
	plan     *model.Plan
	computed map[*model.Field]*model.ComputedField
	diags    hcl.Diagnostics
}

func (c *checker) errorf(kind diag.Kind, rng hcl.Range, summary, format string, args ...any) {
	c.diags = append(c.diags, diag.Error(kind, rng, summary, fmt.Sprintf(format, args...)))
}

func (c *checker) warnf(kind diag.Kind, rng hcl.Range, summary, format string, args ...any) {
	c.diags = append(c.diags, diag.Warning(kind, rng, summary, fmt.Sprintf(format, args...)))
}

// partition splits fields by the presence of computed and reports the
// per-field rules.
func (c *checker) partition() {
	for _, f := range c.s.Fields {
		if f.Annotated && f.Exported {
			c.errorf(diag.VisibilityViolation, f.NameRange, "Annotated field is exported",
				"Field %q must be unexported so that it can only change through its generated accessors.", f.Name)
		}

		if !f.Attrs.IsComputed() {
			c.plan.Plain = append(c.plan.Plain, &model.PlainField{
				Field: f,
				Get:   f.Attrs.Accessors.Has(attr.Get),
				Set:   f.Attrs.Accessors.Has(attr.Set),
			})
			continue
		}

		if f.Attrs.Invalidates != nil {
			c.errorf(diag.AttributeConflict, f.Attrs.InvalidatesRange, "Conflicting attributes",
				"invalidates is not allowed on a computed field (%q).", f.Name)
		}
		if !f.Attrs.Accessors.Empty() {
			c.errorf(diag.AttributeConflict, f.Attrs.AccessorRange, "Conflicting attributes",
				"accessor attributes are not allowed on a computed field (%q).", f.Name)
		}
		if f.ValueType == "" {
			c.errorf(diag.UnsupportedCellType, f.TypeRange, "Unsupported cell type",
				"Computed field %q has type %s; it must be a memoization cell such as memo.Cell[T].", f.Name, f.Type)
		}

		cf := &model.ComputedField{Field: f, Func: f.Attrs.Computed.Func}
		c.plan.Computed = append(c.plan.Computed, cf)
		c.computed[f] = cf
	}
}

// resolveEdges checks that every invalidation target exists.
func (c *checker) resolveEdges() {
	for _, p := range c.plan.Plain {
		ref := p.Attrs.Invalidates
		if ref == nil {
			continue
		}

		target := c.s.Field(ref.Name)
		if target == nil {
			c.errorf(diag.UndefinedInvalidationTarget, ref.Range, "Undefined invalidation target",
				"Struct %s has no field named %q. Declared fields: %s.", c.s.Name, ref.Name, c.fieldList())
			continue
		}
		if _, ok := c.computed[target]; !ok {
			c.warnf(diag.KindNone, ref.Range, "Invalidation target is not computed",
				"Field %q is not a computed field; its type must still provide an Invalidate method.", ref.Name)
		}

		p.Invalidates = target
		c.plan.Edges = append(c.plan.Edges, model.Edge{Source: p.Field, Target: target})
	}
}

// resolveDependencies fills in the argument list of every computing function.
func (c *checker) resolveDependencies() {
	for _, cf := range c.plan.Computed {
		deps := cf.Attrs.Computed.Deps
		if len(deps) == 0 {
			for _, e := range c.plan.Edges {
				if e.Target == cf.Field {
					cf.Deps = append(cf.Deps, e.Source)
				}
			}
			continue
		}

		for _, ref := range deps {
			dep := c.s.Field(ref.Name)
			if dep == nil || c.computed[dep] != nil {
				c.errorf(diag.UndefinedDependency, ref.Range, "Undefined dependency",
					"Struct %s has no plain field named %q to pass to %s.", c.s.Name, ref.Name, cf.Func)
				continue
			}
			if inv := dep.Attrs.Invalidates; inv == nil || inv.Name != cf.Name {
				c.warnf(diag.StaleDependency, ref.Range, "Dependency does not invalidate the computed field",
					"Field %q is passed to %s but does not declare invalidates(%s); writes to it will not refresh the cached value.",
					ref.Name, cf.Func, cf.Name)
			}
			cf.Deps = append(cf.Deps, dep)
		}
	}
}

// checkCollisions makes sure generated methods do not shadow fields.
func (c *checker) checkCollisions() {
	fields := make(map[string]bool, len(c.s.Fields))
	for _, f := range c.s.Fields {
		fields[f.Name] = true
	}

	check := func(method string, rng hcl.Range) {
		if fields[method] {
			c.errorf(diag.NameCollision, rng, "Generated method collides with a field",
				"Struct %s already has a field named %s.", c.s.Name, method)
		}
	}
	for _, p := range c.plan.Plain {
		if p.Get {
			check(model.GetterName(p.Name), p.Attrs.AccessorRange)
		}
		if p.Set {
			check(model.SetterName(p.Name), p.Attrs.AccessorRange)
		}
	}
	for _, cf := range c.plan.Computed {
		check(model.ComputeName(cf.Name), cf.Attrs.ComputedRange)
	}
}

func (c *checker) fieldList() string {
	names := make([]string, 0, len(c.s.Fields))
	for _, f := range c.s.Fields {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}
