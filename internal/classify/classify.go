// Package classify assigns extracted resource types to coarse functional
// categories used for topology inference.
package classify

import (
	"strings"

	"terraform-archviz/internal/extract"
)

// Category is a functional bucket for grouping resources.
type Category string

const (
	Network     Category = "network"
	Compute     Category = "compute"
	Database    Category = "database"
	Storage     Category = "storage"
	Security    Category = "security"
	Integration Category = "integration"
	Monitoring  Category = "monitoring"
	Other       Category = "other"
)

// Categories lists every category in its fixed layer order. Iteration over
// categorized sets goes through this list, never map order.
var Categories = []Category{
	Network, Compute, Database, Storage, Security, Integration, Monitoring, Other,
}

// Ref identifies one declaration inside a categorized set.
type Ref struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Set maps each category to the resources assigned to it. Every declaration
// of the source inventory appears in exactly one category.
type Set map[Category][]Ref

// Total returns the number of refs across all categories.
func (s Set) Total() int {
	n := 0
	for _, refs := range s {
		n += len(refs)
	}
	return n
}

// partialRule matches a substring of a resource type when no exact table
// entry exists. First matching rule wins.
type partialRule struct {
	substr   string
	category Category
}

// Classifier maps resource types to categories. The lookup table is fixed at
// construction and never mutated afterward.
type Classifier struct {
	table   map[string]Category
	partial []partialRule
}

// NewClassifier returns a classifier with the default assignment table.
func NewClassifier() *Classifier {
	return &Classifier{table: defaultTable, partial: defaultPartialRules}
}

// Classify returns the category for a resource type. Exact table lookup is
// consulted first, then the ordered partial rules, then Other. Total: every
// type gets exactly one category.
func (c *Classifier) Classify(resourceType string) Category {
	if cat, ok := c.table[resourceType]; ok {
		return cat
	}
	for _, rule := range c.partial {
		if strings.Contains(resourceType, rule.substr) {
			return rule.category
		}
	}
	return Other
}

// Categorize buckets every declaration of an inventory. Types are visited in
// sorted order and declarations in extraction order, so the result is
// reproducible for a given inventory.
func (c *Classifier) Categorize(inv extract.Inventory) Set {
	set := make(Set)
	for _, t := range inv.Types() {
		cat := c.Classify(t)
		for _, d := range inv[t] {
			set[cat] = append(set[cat], Ref{Type: d.Type, Name: d.Name})
		}
	}
	return set
}

var defaultTable = map[string]Category{
	// Compute
	"aws_instance":             Compute,
	"aws_lambda_function":      Compute,
	"aws_ecs_service":          Compute,
	"aws_ecs_cluster":          Compute,
	"aws_ecs_task_definition":  Compute,
	"aws_eks_cluster":          Compute,
	"aws_autoscaling_group":    Compute,
	"aws_launch_configuration": Compute,
	"aws_launch_template":      Compute,

	// Database
	"aws_db_instance":                   Database,
	"aws_rds_cluster":                   Database,
	"aws_dynamodb_table":                Database,
	"aws_elasticache_cluster":           Database,
	"aws_elasticache_replication_group": Database,
	"aws_redshift_cluster":              Database,

	// Network
	"aws_lb":                      Network,
	"aws_alb":                     Network,
	"aws_elb":                     Network,
	"aws_lb_target_group":         Network,
	"aws_lb_listener":             Network,
	"aws_route53_record":          Network,
	"aws_route53_zone":            Network,
	"aws_cloudfront_distribution": Network,
	"aws_vpc":                     Network,
	"aws_subnet":                  Network,
	"aws_internet_gateway":        Network,
	"aws_nat_gateway":             Network,
	"aws_route_table":             Network,
	"aws_route_table_association": Network,
	"aws_eip":                     Network,

	// Storage
	"aws_s3_bucket":        Storage,
	"aws_s3_bucket_policy": Storage,
	"aws_ebs_volume":       Storage,
	"aws_efs_file_system":  Storage,

	// Security
	"aws_security_group":       Security,
	"aws_security_group_rule":  Security,
	"aws_waf_web_acl":          Security,
	"aws_wafv2_web_acl":        Security,
	"aws_iam_role":             Security,
	"aws_iam_policy":           Security,
	"aws_iam_user":             Security,
	"aws_iam_instance_profile": Security,
	"aws_kms_key":              Security,
	"aws_cognito_user_pool":    Security,

	// Integration
	"aws_sqs_queue":            Integration,
	"aws_sns_topic":            Integration,
	"aws_api_gateway_rest_api": Integration,

	// Monitoring
	"aws_cloudwatch_log_group":    Monitoring,
	"aws_cloudwatch_metric_alarm": Monitoring,
	"aws_cloudwatch_dashboard":    Monitoring,

	// Common module sources
	"module_vpc":      Network,
	"module_database": Database,
	"module_security": Security,

	// Configuration-only blocks carry no architectural role.
	"variable": Other,
	"output":   Other,
	"provider": Other,
}

var defaultPartialRules = []partialRule{
	{"database", Database},
	{"db_", Database},
	{"sql", Database},
	{"vpc", Network},
	{"subnet", Network},
	{"network", Network},
	{"route", Network},
	{"lb", Network},
	{"dns", Network},
	{"instance", Compute},
	{"compute", Compute},
	{"lambda", Compute},
	{"ecs", Compute},
	{"kubernetes", Compute},
	{"s3", Storage},
	{"storage", Storage},
	{"bucket", Storage},
	{"iam", Security},
	{"security", Security},
	{"waf", Security},
	{"acl", Security},
	{"sqs", Integration},
	{"sns", Integration},
	{"queue", Integration},
	{"topic", Integration},
	{"cloudwatch", Monitoring},
	{"monitor", Monitoring},
	{"alarm", Monitoring},
	{"log", Monitoring},
}
