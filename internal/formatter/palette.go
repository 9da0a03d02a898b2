package formatter

import "fmt"

// Color is a palette entry: an X11 color family graded by intensity, so
// related resource types share a hue at different strengths.
type Color struct {
	Family string
	Grade  int
}

func (c Color) String() string {
	return fmt.Sprintf("%s%d", c.Family, c.Grade)
}

// defaultColor is used for any resource type missing from the palette.
const defaultColor = "gray40"

// One family per resource category.
const (
	identityFamily = "darkgoldenrod"
	networkFamily  = "dodgerblue"
	computeFamily  = "green"
	storageFamily  = "firebrick"
	observeFamily  = "purple"
)

// palette maps resource types (aws_ prefix stripped) to their label
// color. Static data, overridable through the graph.colors config key.
var palette = map[string]Color{
	// identity and access
	"iam_role":                   {identityFamily, 3},
	"iam_policy":                 {identityFamily, 2},
	"iam_role_policy":            {identityFamily, 2},
	"iam_role_policy_attachment": {identityFamily, 1},
	"iam_instance_profile":       {identityFamily, 2},
	"iam_user":                   {identityFamily, 3},

	// networking
	"vpc":                     {networkFamily, 4},
	"subnet":                  {networkFamily, 3},
	"route_table":             {networkFamily, 2},
	"route":                   {networkFamily, 1},
	"route_table_association": {networkFamily, 1},
	"internet_gateway":        {networkFamily, 2},
	"nat_gateway":             {networkFamily, 2},
	"eip":                     {networkFamily, 1},
	"security_group":          {networkFamily, 3},
	"security_group_rule":     {networkFamily, 1},
	"lb":                      {networkFamily, 3},
	"lb_listener":             {networkFamily, 2},
	"lb_target_group":         {networkFamily, 2},
	"route53_record":          {networkFamily, 2},

	// compute
	"instance":            {computeFamily, 4},
	"launch_template":     {computeFamily, 2},
	"autoscaling_group":   {computeFamily, 3},
	"lambda_function":     {computeFamily, 4},
	"lambda_permission":   {computeFamily, 1},
	"ecs_cluster":         {computeFamily, 3},
	"ecs_service":         {computeFamily, 3},
	"ecs_task_definition": {computeFamily, 2},
	"key_pair":            {computeFamily, 1},

	// storage
	"s3_bucket":           {storageFamily, 3},
	"s3_bucket_policy":    {storageFamily, 1},
	"ebs_volume":          {storageFamily, 2},
	"efs_file_system":     {storageFamily, 2},
	"db_instance":         {storageFamily, 3},
	"db_subnet_group":     {storageFamily, 1},
	"dynamodb_table":      {storageFamily, 3},
	"elasticache_cluster": {storageFamily, 2},

	// observability
	"cloudwatch_log_group":    {observeFamily, 2},
	"cloudwatch_metric_alarm": {observeFamily, 2},
	"cloudwatch_dashboard":    {observeFamily, 1},
	"sns_topic":               {observeFamily, 2},
	"sns_topic_subscription":  {observeFamily, 1},
	"sqs_queue":               {observeFamily, 2},
}
