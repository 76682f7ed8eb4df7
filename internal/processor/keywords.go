package processor

import "strings"

// keywordRule maps one label to the keywords that indicate it. Rules are
// ordered so classification output is deterministic.
type keywordRule struct {
	Label    string
	Keywords []string
}

// DefaultTechRules maps technology categories to indicator keywords.
var DefaultTechRules = []keywordRule{
	{"ML", []string{
		"machine learning", "ml", "supervised", "unsupervised", "classification",
		"regression", "clustering", "random forest", "svm", "decision tree",
		"xgboost", "gradient boosting", "linear regression", "logistic regression",
	}},
	{"DL", []string{
		"deep learning", "dl", "neural network", "cnn", "rnn", "lstm", "gru",
		"transformer", "bert", "gpt", "attention", "encoder", "decoder",
		"resnet", "vgg", "yolo", "unet", "gan", "autoencoder",
	}},
	{"RL", []string{
		"reinforcement learning", "rl", "policy", "reward", "agent", "environment",
		"q-learning", "dqn", "ppo", "a3c", "actor-critic", "markov decision",
	}},
	{"NLP", []string{
		"nlp", "natural language", "text", "sentiment", "translation",
		"named entity", "tokenization", "embeddings", "language model",
	}},
}

// DefaultDataTypeRules maps data types to indicator keywords.
var DefaultDataTypeRules = []keywordRule{
	{"text", []string{"text", "document", "nlp", "language", "sentiment", "chat", "email"}},
	{"image", []string{"image", "vision", "photo", "visual", "ocr", "face", "object detection"}},
	{"video", []string{"video", "stream", "frame", "motion"}},
	{"audio", []string{"audio", "speech", "voice", "sound"}},
	{"tabular", []string{"tabular", "structured", "database", "csv", "spreadsheet", "sql"}},
	{"time-series", []string{"time series", "temporal", "sequential", "forecasting", "prediction"}},
	{"graph", []string{"graph", "network", "relationship", "connected"}},
	{"unstructured", []string{"unstructured", "raw", "mixed"}},
}

// modelNames are the specific models and architectures worth surfacing.
// Order determines output order.
var modelNames = []string{
	"bert", "gpt", "transformer", "resnet", "vgg", "yolo",
	"lstm", "gru", "cnn", "rnn", "unet", "gan", "vae",
	"xgboost", "random forest", "svm", "decision tree",
	"linear regression", "logistic regression", "k-means",
	"dbscan", "pca", "autoencoder", "attention",
}

// useCaseIndicators mark a section heading as describing a use case.
var useCaseIndicators = []string{
	"use case", "solution", "application", "example",
	"scenario", "problem", "challenge", "implementation",
}

// reasoningKeywords mark sentences that explain why an approach works.
var reasoningKeywords = []string{
	"because", "why", "advantage", "benefit", "suitable",
	"appropriate", "effective", "enables", "allows",
}

// Classifier applies keyword rule tables to free text.
type Classifier struct {
	techRules     []keywordRule
	dataTypeRules []keywordRule
}

// NewClassifier creates a classifier. Nil rule sets fall back to the
// defaults.
func NewClassifier(techRules, dataTypeRules []keywordRule) *Classifier {
	if len(techRules) == 0 {
		techRules = DefaultTechRules
	}
	if len(dataTypeRules) == 0 {
		dataTypeRules = DefaultDataTypeRules
	}
	return &Classifier{techRules: techRules, dataTypeRules: dataTypeRules}
}

// match returns the labels whose keywords appear in the lowercased text,
// in rule order.
func match(rules []keywordRule, lower string) []string {
	var labels []string
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				labels = append(labels, rule.Label)
				break
			}
		}
	}
	return labels
}

// TechCategories returns the technology categories indicated by the text.
func (c *Classifier) TechCategories(text string) []string {
	return match(c.techRules, strings.ToLower(text))
}

// DataTypes returns the data types indicated by the text.
func (c *Classifier) DataTypes(text string) []string {
	return match(c.dataTypeRules, strings.ToLower(text))
}

// ModelNames returns the specific models mentioned in the text. Short
// names become uppercase acronyms, longer ones title case.
func (c *Classifier) ModelNames(text string) []string {
	lower := strings.ToLower(text)

	var models []string
	for _, name := range modelNames {
		if !strings.Contains(lower, name) {
			continue
		}
		if len(name) <= 4 {
			models = append(models, strings.ToUpper(name))
		} else {
			models = append(models, titleCase(name))
		}
	}
	return models
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
