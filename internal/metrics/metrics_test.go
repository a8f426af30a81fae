package metrics

import (
	"testing"

	"github.com/job-intake/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAccepted(t *testing.T) {
	accepted := testutil.ToFloat64(ApplicationsReceived.WithLabelValues(ResultAccepted))
	resumes := testutil.ToFloat64(FilesStaged.WithLabelValues("resume"))
	videos := testutil.ToFloat64(FilesStaged.WithLabelValues("video"))

	ObserveAccepted(map[string][]models.UploadedFile{
		"resume": {{FieldName: "resume", Size: 1024}},
		"video":  {{FieldName: "video", Size: 4 << 20}},
	})

	assert.Equal(t, accepted+1, testutil.ToFloat64(ApplicationsReceived.WithLabelValues(ResultAccepted)))
	assert.Equal(t, resumes+1, testutil.ToFloat64(FilesStaged.WithLabelValues("resume")))
	assert.Equal(t, videos+1, testutil.ToFloat64(FilesStaged.WithLabelValues("video")))
}

func TestObserveRejected(t *testing.T) {
	before := testutil.ToFloat64(ApplicationsReceived.WithLabelValues("INVALID_VIDEO_TYPE"))
	ObserveRejected("INVALID_VIDEO_TYPE")
	assert.Equal(t, before+1, testutil.ToFloat64(ApplicationsReceived.WithLabelValues("INVALID_VIDEO_TYPE")))
}
