package dto

import (
	"encoding/json"
	"testing"

	"github.com/hostelcare/hostel-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityID_Unmarshal(t *testing.T) {
	cases := map[string]EntityID{
		`{"worker":7}`:      7,
		`{"worker":"7"}`:    7,
		`{"worker":" 12 "}`: 12,
		`{"worker":""}`:     0,
		`{"worker":null}`:   0,
		`{}`:                0,
	}
	for body, want := range cases {
		var req SubmitLogRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, req.WorkerID, body)
	}
}

func TestEntityID_UnmarshalRejectsNonNumeric(t *testing.T) {
	for _, body := range []string{`{"worker":"abc"}`, `{"worker":-1}`, `{"worker":true}`, `{"worker":[1]}`} {
		var req SubmitLogRequest
		err := json.Unmarshal([]byte(body), &req)
		require.Error(t, err, body)
		assert.Equal(t, utils.KindValidation, utils.KindOf(err), body)
	}
}
