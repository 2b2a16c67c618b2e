package storage

import (
	"encoding/json"
	"errors"

	"qubench/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeChallengeSummary(s model.ChallengeSummary) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeChallengeSummary(data []byte) (model.ChallengeSummary, error) {
	var summary model.ChallengeSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.ChallengeSummary{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.ChallengeSummary{}, err
	}
	return summary, nil
}

// Stamp fills in the current schema/codec versions.
func Stamp() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
