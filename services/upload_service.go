package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"

	"inkpress/dto"
)

// uploadAuthTTL is how long a signed upload-auth triple stays valid.
const uploadAuthTTL = 30 * time.Minute

// UploadService issues the signed parameters clients use to upload cover
// images directly to the media CDN. The CDN contract is a fixed triple:
// token, unix expiry, and hex(HMAC-SHA1(token+expire, private key)). Binary
// data never touches this backend.
type UploadService struct {
	privateKey  string
	publicKey   string
	urlEndpoint string
	now         func() time.Time
}

func NewUploadService(privateKey, publicKey, urlEndpoint string) *UploadService {
	return &UploadService{
		privateKey:  privateKey,
		publicKey:   publicKey,
		urlEndpoint: urlEndpoint,
		now:         time.Now,
	}
}

// AuthParams mints a fresh upload-auth triple.
func (s *UploadService) AuthParams() dto.UploadAuthDTO {
	token := uuid.New().String()
	expire := s.now().Add(uploadAuthTTL).Unix()

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	signature := hex.EncodeToString(mac.Sum(nil))

	return dto.UploadAuthDTO{
		Token:       token,
		Expire:      expire,
		Signature:   signature,
		PublicKey:   s.publicKey,
		URLEndpoint: s.urlEndpoint,
	}
}
