package permission

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reque-io/reque/internal/domain/permission"
	"github.com/reque-io/reque/internal/shared/logger"
)

// PolicyDocument mirrors configs/policies.yaml: role -> resource -> actions.
type PolicyDocument struct {
	Policies map[string]map[string][]string `yaml:"policies"`
}

func LoadPolicyDocument(path string) (*PolicyDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var doc PolicyDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	if len(doc.Policies) == 0 {
		return nil, fmt.Errorf("policy file %s defines no policies", path)
	}

	return &doc, nil
}

// Grants flattens the document into validated grants in a stable order.
func (d *PolicyDocument) Grants() ([]*permission.Grant, error) {
	var grants []*permission.Grant
	for role, resources := range d.Policies {
		for resource, actions := range resources {
			for _, action := range actions {
				grant, err := permission.NewGrant(role, resource, action)
				if err != nil {
					return nil, fmt.Errorf("invalid policy %s/%s/%s: %w", role, resource, action, err)
				}
				grants = append(grants, grant)
			}
		}
	}

	sort.Slice(grants, func(i, j int) bool {
		return strings.Join(grants[i].Rule(), "\x00") < strings.Join(grants[j].Rule(), "\x00")
	})

	return grants, nil
}

// Bootstrap seeds the policy store from the YAML policy file. Existing rules
// are left alone, so it is safe to run at every startup.
func Bootstrap(enforcer *Enforcer, path string, log logger.Interface) error {
	doc, err := LoadPolicyDocument(path)
	if err != nil {
		return err
	}

	grants, err := doc.Grants()
	if err != nil {
		return err
	}

	rules := make([][]string, 0, len(grants))
	for _, grant := range grants {
		rules = append(rules, grant.Rule())
	}

	added, err := enforcer.SeedPolicies(rules)
	if err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}

	log.Infow("policy bootstrap complete", "rules", len(rules), "added", added)
	return nil
}
