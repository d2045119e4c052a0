package datatype

import (
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/transform"
)

type datetime struct {
	inputOnly
	template *transform.Pipeline
}

/*
NewDatetime creates handler of timestamps, such as `last_payment: ["2018-09-12", "2018-10-01"]`.
Timestamps are converted into nanoseconds since epoch, imputed by mean and standardized.
*/
func NewDatetime() Handler {
	return datetime{
		inputOnly{schema.Datetime},
		transform.NewPipeline(&transform.EpochTransformer{}, &transform.MeanImputer{}, &transform.StandardScaler{}),
	}
}

func (h datetime) DefaultPipeline() *transform.Pipeline { return h.template.Clone() }
