package entity

// Bucket is one of the four AFOM quadrants or the archive bin.
type Bucket string

const (
	BucketAcquis       Bucket = "acquis"
	BucketFaiblesses   Bucket = "faiblesses"
	BucketOpportunites Bucket = "opportunites"
	BucketMenaces      Bucket = "menaces"
	BucketArchive      Bucket = "archive"
)

// ContentBuckets lists the four quadrants in board order.
var ContentBuckets = []Bucket{
	BucketAcquis,
	BucketFaiblesses,
	BucketOpportunites,
	BucketMenaces,
}

func (b Bucket) IsContent() bool {
	switch b {
	case BucketAcquis, BucketFaiblesses, BucketOpportunites, BucketMenaces:
		return true
	}
	return false
}

func (b Bucket) IsValid() bool {
	return b.IsContent() || b == BucketArchive
}

func (b Bucket) String() string {
	return string(b)
}
