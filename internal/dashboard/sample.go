// internal/dashboard/sample.go
package dashboard

import (
	"krixo-panel/internal/models"
	"krixo-panel/internal/normalizer"
)

// Demonstration records used in screenshot mode and when the backend
// reports its known NULL-scan defect on /GetCommands.
func sampleCommandRecords() []normalizer.RawRecord {
	return []normalizer.RawRecord{
		{
			"id":          "cmd-001",
			"name":        "أحمد محمد علي",
			"phone":       "0123456789",
			"email":       "ahmed.mohamed@email.com",
			"services":    []interface{}{"cleaning", "delivery"},
			"workers":     "3",
			"start":       "القاهرة - مصر الجديدة",
			"end":         "الإسكندرية - سموحة",
			"price":       "2500",
			"status":      "pending",
			"createdAt":   "2024-01-15T10:30:00Z",
			"description": "نقل أثاث من شقة إلى شقة أخرى مع تنظيف شامل",
		},
		{
			"id":          "cmd-002",
			"name":        "فاطمة أحمد حسن",
			"phone":       "0987654321",
			"email":       "fatima.ahmed@email.com",
			"services":    []interface{}{"cleaning"},
			"workers":     "2",
			"start":       "الجيزة - الدقي",
			"end":         "الجيزة - الدقي",
			"price":       "800",
			"status":      "approved",
			"createdAt":   "2024-01-14T14:20:00Z",
			"description": "تنظيف شقة 3 غرف نوم بعد السكن",
		},
	}
}

func sampleWorkerRecords() []normalizer.RawRecord {
	return []normalizer.RawRecord{
		{
			"id":         "worker-001",
			"name":       "محمد علي أحمد",
			"email":      "mohamed.ali@email.com",
			"phone":      "0111222333",
			"position":   "عامل تنظيف",
			"experience": "5 سنوات",
			"message":    "لدي خبرة في تنظيف المنازل والمكاتب والفلل",
			"createdAt":  "2024-01-13T09:15:00Z",
		},
		{
			"id":         "worker-002",
			"name":       "علي حسن محمد",
			"email":      "ali.hassan@email.com",
			"phone":      "0444555666",
			"position":   "سائق نقل",
			"experience": "8 سنوات",
			"message":    "سائق محترف مع رخصة نقل أثاث ومركبات ثقيلة",
			"isaccepted": true,
			"createdAt":  "2024-01-12T16:45:00Z",
		},
	}
}

// SampleCommands returns the demonstration commands in canonical shape.
func SampleCommands(n *normalizer.Normalizer) []models.Command {
	return n.Commands(samplePayload(sampleCommandRecords()))
}

// SampleWorkers returns the demonstration workers in canonical shape.
func SampleWorkers(n *normalizer.Normalizer) []models.Worker {
	return n.Workers(samplePayload(sampleWorkerRecords()))
}

// samplePayload runs the demonstration records through the same path as a
// backend list response.
func samplePayload(records []normalizer.RawRecord) normalizer.Payload {
	items := make([]interface{}, len(records))
	for i, r := range records {
		items[i] = r
	}
	return normalizer.ListPayload(items)
}
