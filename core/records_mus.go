package core

import (
	"time"

	com "github.com/mus-format/common-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted domain types. Composed by hand from the
// mus-go primitive serializers; field order is the wire format and must not
// change without a migration.
var (
	IDMUS                 = idMUS{}
	ViewsMUS              = viewsMUS{}
	VerificationRecordMUS = verificationRecordMUS{}
	VerifiedAnswerMUS     = verifiedAnswerMUS{}

	timeMicroMUS     = timeMUS{}
	stringsMUS       = stringSliceMUS{}
	float32sMUS      = float32SliceMUS{}
	verificationsMUS = verificationSliceMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

type viewsMUS struct{}

func (viewsMUS) Marshal(views uint64, bs []byte) int {
	return varint.Uint64.Marshal(views, bs)
}

func (viewsMUS) Unmarshal(bs []byte) (uint64, int, error) {
	return varint.Uint64.Unmarshal(bs)
}

func (viewsMUS) Size(views uint64) int {
	return varint.Uint64.Size(views)
}

// timeMUS encodes a time as a presence flag plus Unix microseconds, so the
// zero time survives a round trip exactly.
type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) (n int) {
	if t.IsZero() {
		return ord.Bool.Marshal(false, bs)
	}
	n = ord.Bool.Marshal(true, bs)
	n += varint.Int64.Marshal(t.UnixMicro(), bs[n:])
	return n
}

func (timeMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return time.Time{}, n, err
	}
	micros, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) (size int) {
	if t.IsZero() {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + varint.Int64.Size(t.UnixMicro())
}

type stringSliceMUS struct{}

func (stringSliceMUS) Marshal(ss []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(ss), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringSliceMUS) Unmarshal(bs []byte) ([]string, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, com.ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	ss := make([]string, 0, length)
	for i := 0; i < length; i++ {
		s, n1, err := ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		ss = append(ss, s)
	}
	return ss, n, nil
}

func (stringSliceMUS) Size(ss []string) (size int) {
	size = varint.Int.Size(len(ss))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return size
}

type float32SliceMUS struct{}

func (float32SliceMUS) Marshal(vs []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(vs), bs)
	for _, v := range vs {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	return n
}

func (float32SliceMUS) Unmarshal(bs []byte) ([]float32, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, com.ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	vs := make([]float32, 0, length)
	for i := 0; i < length; i++ {
		v, n1, err := raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		vs = append(vs, v)
	}
	return vs, n, nil
}

func (float32SliceMUS) Size(vs []float32) (size int) {
	size = varint.Int.Size(len(vs))
	for _, v := range vs {
		size += raw.Float32.Size(v)
	}
	return size
}

type verificationRecordMUS struct{}

func (verificationRecordMUS) Marshal(record VerificationRecord, bs []byte) (n int) {
	n = varint.Int.Marshal(int(record.Rating), bs)
	n += ord.String.Marshal(record.Verifier, bs[n:])
	n += varint.Int.Marshal(int(record.Type), bs[n:])
	n += stringsMUS.Marshal(record.Departments, bs[n:])
	n += timeMicroMUS.Marshal(record.DueDate, bs[n:])
	n += timeMicroMUS.Marshal(record.Timestamp, bs[n:])
	return n
}

func (verificationRecordMUS) Unmarshal(bs []byte) (record VerificationRecord, n int, err error) {
	var n1 int
	var rating int
	rating, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return record, n, err
	}
	record.Rating = Rating(rating)
	record.Verifier, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return record, n, err
	}
	var verificationType int
	verificationType, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return record, n, err
	}
	record.Type = VerificationType(verificationType)
	record.Departments, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return record, n, err
	}
	record.DueDate, n1, err = timeMicroMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return record, n, err
	}
	record.Timestamp, n1, err = timeMicroMUS.Unmarshal(bs[n:])
	n += n1
	return record, n, err
}

func (verificationRecordMUS) Size(record VerificationRecord) (size int) {
	size = varint.Int.Size(int(record.Rating))
	size += ord.String.Size(record.Verifier)
	size += varint.Int.Size(int(record.Type))
	size += stringsMUS.Size(record.Departments)
	size += timeMicroMUS.Size(record.DueDate)
	size += timeMicroMUS.Size(record.Timestamp)
	return size
}

type verificationSliceMUS struct{}

func (verificationSliceMUS) Marshal(records []VerificationRecord, bs []byte) (n int) {
	n = varint.Int.Marshal(len(records), bs)
	for _, record := range records {
		n += VerificationRecordMUS.Marshal(record, bs[n:])
	}
	return n
}

func (verificationSliceMUS) Unmarshal(bs []byte) ([]VerificationRecord, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, com.ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	records := make([]VerificationRecord, 0, length)
	for i := 0; i < length; i++ {
		record, n1, err := VerificationRecordMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		records = append(records, record)
	}
	return records, n, nil
}

func (verificationSliceMUS) Size(records []VerificationRecord) (size int) {
	size = varint.Int.Size(len(records))
	for _, record := range records {
		size += VerificationRecordMUS.Size(record)
	}
	return size
}

type verifiedAnswerMUS struct{}

func (verifiedAnswerMUS) Marshal(answer VerifiedAnswer, bs []byte) (n int) {
	n = IDMUS.Marshal(answer.Id, bs)
	n += ord.String.Marshal(answer.Question, bs[n:])
	n += ord.String.Marshal(answer.Answer, bs[n:])
	n += ord.String.Marshal(string(answer.Intent), bs[n:])
	n += stringsMUS.Marshal(answer.Departments, bs[n:])
	n += float32sMUS.Marshal(answer.Vector, bs[n:])
	n += timeMicroMUS.Marshal(answer.CreatedAt, bs[n:])
	n += timeMicroMUS.Marshal(answer.UpdatedAt, bs[n:])
	n += varint.Int.Marshal(answer.AcceptedCount, bs[n:])
	n += varint.Int.Marshal(answer.RejectedCount, bs[n:])
	n += ord.Bool.Marshal(answer.Archived, bs[n:])
	n += verificationsMUS.Marshal(answer.Verifications, bs[n:])
	return n
}

func (verifiedAnswerMUS) Unmarshal(bs []byte) (answer VerifiedAnswer, n int, err error) {
	var n1 int
	answer.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return answer, n, err
	}
	answer.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	var intent string
	intent, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.Intent = Intent(intent)
	answer.Departments, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.Vector, n1, err = float32sMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.CreatedAt, n1, err = timeMicroMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.UpdatedAt, n1, err = timeMicroMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.AcceptedCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.RejectedCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.Archived, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return answer, n, err
	}
	answer.Verifications, n1, err = verificationsMUS.Unmarshal(bs[n:])
	n += n1
	return answer, n, err
}

func (verifiedAnswerMUS) Size(answer VerifiedAnswer) (size int) {
	size = IDMUS.Size(answer.Id)
	size += ord.String.Size(answer.Question)
	size += ord.String.Size(answer.Answer)
	size += ord.String.Size(string(answer.Intent))
	size += stringsMUS.Size(answer.Departments)
	size += float32sMUS.Size(answer.Vector)
	size += timeMicroMUS.Size(answer.CreatedAt)
	size += timeMicroMUS.Size(answer.UpdatedAt)
	size += varint.Int.Size(answer.AcceptedCount)
	size += varint.Int.Size(answer.RejectedCount)
	size += ord.Bool.Size(answer.Archived)
	size += verificationsMUS.Size(answer.Verifications)
	return size
}
