package storage

import (
	"encoding/json"
	"errors"

	"snpgen/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func CurrentVersion() model.VersionedRecord {
	return model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

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

func EncodeFixture(f model.FixtureRecord) ([]byte, error) {
	return json.Marshal(f)
}

func DecodeFixture(data []byte) (model.FixtureRecord, error) {
	var fixture model.FixtureRecord
	if err := json.Unmarshal(data, &fixture); err != nil {
		return model.FixtureRecord{}, err
	}
	if err := checkVersion(fixture.VersionedRecord); err != nil {
		return model.FixtureRecord{}, err
	}
	return fixture, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
