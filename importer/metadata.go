package importer

import (
	"github.com/mocksmith/mocksmith/domain"
)

// Vendor extension names recognized by the importer. Both are consumed as
// already-parsed node data; nothing validates their shape beyond what is
// read here.
const (
	// serviceExtension on the info section carries service-level metadata.
	serviceExtension = "x-mocksmith"
	// operationExtension on a verb node carries operation properties,
	// including an optional forced dispatcher.
	operationExtension = "x-mocksmith-operation"
)

// extractMetadata populates a service metadata record from the service
// extension node.
func extractMetadata(node any) *domain.Metadata {
	meta := &domain.Metadata{}
	if labels := asMap(child(node, "labels")); len(labels) > 0 {
		meta.Labels = stringMap(labels)
	}
	if annotations := asMap(child(node, "annotations")); len(annotations) > 0 {
		meta.Annotations = stringMap(annotations)
	}
	return meta
}

// completeOperationProperties applies operation-level vendor properties:
// a forced dispatcher and rule set, and a default response delay.
// A forced dispatcher bypasses automatic strategy inference entirely.
func completeOperationProperties(op *domain.Operation, node any) {
	if dispatcherName := childString(node, "dispatcher"); dispatcherName != "" {
		op.Dispatcher = dispatcherName
		op.DispatcherRules = childString(node, "dispatcherRules")
	}
	if delay, ok := child(node, "delay").(int); ok && delay > 0 {
		op.DefaultDelay = int64(delay)
	}
}

func stringMap(node map[string]any) map[string]string {
	result := make(map[string]string, len(node))
	for _, key := range sortedKeys(node) {
		result[key] = valueString(node[key])
	}
	return result
}
