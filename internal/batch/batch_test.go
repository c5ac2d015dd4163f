package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDeleter struct {
	inputs []*s3.DeleteObjectsInput
	failAt int
}

func (r *recordingDeleter) DeleteObjects(
	_ context.Context,
	input *s3.DeleteObjectsInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectsOutput, error) {
	r.inputs = append(r.inputs, input)
	if r.failAt > 0 && len(r.inputs) == r.failAt {
		return nil, errors.New("AWS Error")
	}
	out := &s3.DeleteObjectsOutput{}
	for _, obj := range input.Delete.Objects {
		out.Deleted = append(out.Deleted, types.DeletedObject{Key: obj.Key})
	}
	return out, nil
}

func generateKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%05d", i)
	}
	return keys
}

func TestDeleter_Requests(t *testing.T) {
	tests := []struct {
		name      string
		keys      int
		batchSize int
		want      []int
	}{
		{"single key", 1, 0, []int{1}},
		{"exactly one batch", 1000, 0, []int{1000}},
		{"two batches", 1001, 0, []int{1000, 1}},
		{"custom size", 7, 3, []int{3, 3, 1}},
		{"oversized batch clamps", 1500, 5000, []int{1000, 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(&recordingDeleter{})
			if tt.batchSize != 0 {
				d = d.WithBatchSize(tt.batchSize)
			}

			inputs := d.Requests("bucket", generateKeys(tt.keys))
			require.Len(t, inputs, len(tt.want))
			for i, input := range inputs {
				assert.Equal(t, "bucket", aws.ToString(input.Bucket))
				assert.Len(t, input.Delete.Objects, tt.want[i])
			}
		})
	}
}

func TestDeleter_Delete_Single(t *testing.T) {
	client := &recordingDeleter{}
	d := New(client)

	out, err := d.Delete(context.Background(), d.Requests("bucket", []string{"a", "b"}))
	require.NoError(t, err)
	assert.Len(t, client.inputs, 1)
	assert.Len(t, out.Deleted, 2)
}

func TestDeleter_Delete_MergesBatches(t *testing.T) {
	client := &recordingDeleter{}
	d := New(client)

	out, err := d.Delete(context.Background(), d.Requests("bucket", generateKeys(2500)))
	require.NoError(t, err)
	assert.Len(t, client.inputs, 3)
	assert.Len(t, out.Deleted, 2500)
	assert.Equal(t, "key-00000", aws.ToString(out.Deleted[0].Key))
	assert.Equal(t, "key-02499", aws.ToString(out.Deleted[2499].Key))
}

func TestDeleter_Delete_StopsOnError(t *testing.T) {
	client := &recordingDeleter{failAt: 2}
	d := New(client)

	out, err := d.Delete(context.Background(), d.Requests("bucket", generateKeys(2500)))
	require.Error(t, err)
	assert.Equal(t, "AWS Error", err.Error())
	assert.Len(t, client.inputs, 2)
	require.NotNil(t, out)
	assert.Len(t, out.Deleted, 1000)
}
