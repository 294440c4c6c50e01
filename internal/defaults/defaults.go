// Package defaults carries the hard-coded placeholder content served when a
// resource cannot be read from the database or comes back empty. The app
// stays usable with plausible content even with zero backend connectivity.
package defaults

import "github.com/club-invaders/fanclub/internal/entity"

// MerchItems returns the four fallback products in their fixed order.
func MerchItems() []entity.MerchItem {
	return []entity.MerchItem{
		{ID: 1, Name: "Invaders Jersey", Price: "MVR 450", KidsPrice: "MVR 350", Image: "https://pub-e001eb4506b145aa938b5d3badbff6a5.r2.dev/attachments/178mqg61am4g21236pwuw"},
		{ID: 2, Name: "Training Tee", Price: "MVR 350", KidsPrice: "MVR 300", Image: "https://pub-e001eb4506b145aa938b5d3badbff6a5.r2.dev/attachments/34uyhij0bcupj5bflvvl4"},
		{ID: 3, Name: "Classic Black", Price: "MVR 400", KidsPrice: "MVR 350", Image: "https://pub-e001eb4506b145aa938b5d3badbff6a5.r2.dev/attachments/k8fftgqvhhmfvknwursfz"},
		{ID: 4, Name: "Away Kit", Price: "MVR 500", KidsPrice: "MVR 400", Image: "https://pub-e001eb4506b145aa938b5d3badbff6a5.r2.dev/attachments/whfnttw8z01twziof2p42"},
	}
}

// Heroes returns the fallback roster.
func Heroes() []entity.Hero {
	return []entity.Hero{
		{ID: 1, Name: "Ahmed Rasheed", Position: "Goalkeeper", Number: "1", Image: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200&h=200&fit=crop&crop=face"},
		{ID: 2, Name: "Ibrahim Naseem", Position: "Defender", Number: "4", Image: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=200&h=200&fit=crop&crop=face"},
		{ID: 3, Name: "Hassan Ali", Position: "Defender", Number: "5", Image: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=200&h=200&fit=crop&crop=face"},
		{ID: 4, Name: "Mohamed Shifaz", Position: "Defender", Number: "3", Image: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=200&h=200&fit=crop&crop=face"},
		{ID: 5, Name: "Yoosuf Shareef", Position: "Midfielder", Number: "8", Image: "https://images.unsplash.com/photo-1519345182560-3f2917c472ef?w=200&h=200&fit=crop&crop=face"},
		{ID: 6, Name: "Ali Waheed", Position: "Midfielder", Number: "10", Image: "https://images.unsplash.com/photo-1463453091185-61582044d556?w=200&h=200&fit=crop&crop=face"},
		{ID: 7, Name: "Hussain Nizam", Position: "Midfielder", Number: "6", Image: "https://images.unsplash.com/photo-1501196354995-cbb51c65aaea?w=200&h=200&fit=crop&crop=face"},
		{ID: 8, Name: "Ismail Faisal", Position: "Midfielder", Number: "14", Image: "https://images.unsplash.com/photo-1522075469751-3a6694fb2f61?w=200&h=200&fit=crop&crop=face"},
		{ID: 9, Name: "Abdulla Shimaz", Position: "Forward", Number: "9", Image: "https://images.unsplash.com/photo-1504257432389-52343af06ae3?w=200&h=200&fit=crop&crop=face"},
		{ID: 10, Name: "Ahmed Nazim", Position: "Forward", Number: "11", Image: "https://images.unsplash.com/photo-1492562080023-ab3db95bfbce?w=200&h=200&fit=crop&crop=face"},
		{ID: 11, Name: "Mohamed Arif", Position: "Forward", Number: "7", Image: "https://images.unsplash.com/photo-1480455624313-e29b44bbbd7a?w=200&h=200&fit=crop&crop=face"},
		{ID: 12, Name: "Hussain Rasheed", Position: "Substitute", Number: "12", Image: "https://images.unsplash.com/photo-1507591064344-4c6ce005b128?w=200&h=200&fit=crop&crop=face"},
	}
}

// BankTransferInfo returns the fallback payment instructions.
func BankTransferInfo() entity.BankTransferInfo {
	return entity.BankTransferInfo{
		BankName:      "Bank of Maldives (BML)",
		AccountName:   "Club Invaders",
		AccountNumber: "7730000123456",
	}
}

// SizeGuide returns the fallback measurement tables.
func SizeGuide() entity.SizeGuide {
	return entity.SizeGuide{
		Adult: []entity.SizeGuideRow{
			{Size: "XS", Chest: `34"`, Length: `26"`, Shoulder: `16"`},
			{Size: "S", Chest: `36"`, Length: `27"`, Shoulder: `17"`},
			{Size: "M", Chest: `38"`, Length: `28"`, Shoulder: `18"`},
			{Size: "L", Chest: `40"`, Length: `29"`, Shoulder: `19"`},
			{Size: "XL", Chest: `42"`, Length: `30"`, Shoulder: `20"`},
			{Size: "XXL", Chest: `44"`, Length: `31"`, Shoulder: `21"`},
		},
		Kids: []entity.SizeGuideRow{
			{Size: "4", Chest: `22"`, Length: `16"`, Age: "3-4"},
			{Size: "6", Chest: `24"`, Length: `18"`, Age: "5-6"},
			{Size: "8", Chest: `26"`, Length: `20"`, Age: "7-8"},
			{Size: "10", Chest: `28"`, Length: `22"`, Age: "9-10"},
			{Size: "12", Chest: `30"`, Length: `24"`, Age: "11-12"},
			{Size: "14", Chest: `32"`, Length: `25"`, Age: "13-14"},
		},
	}
}
