package content

const attachmentFields = `
      attachments {
        attachment1 { attachment1Label attachment1File { node { mediaItemUrl } } }
        attachment2 { attachment2Label attachment2File { node { mediaItemUrl } } }
        attachment3 { attachment3Label attachment3File { node { mediaItemUrl } } }
        attachment4 { attachment4Label attachment4File { node { mediaItemUrl } } }
        attachment5 { attachment5Label attachment5File { node { mediaItemUrl } } }
      }`

const ProgramsQuery = `
query ExplorePrograms {
  programs(first: 500) {
    nodes {
      slug
      title
      featuredImage { node { sourceUrl altText mediaDetails { width height } } }
      programFields {
        summary
        longDescription
        offeringType
        ageRange { min max }
        skillLevel
        duration
        priceFrom
        benefits
        whatToBring
        instructors
        audience { nodes { name slug } }
        membershipRequirements { nodes { name slug } }
        registrationSystem { nodes { name slug } }
        session { nodes { name slug } }
        programArea { nodes { name slug } }
        externalSchedule { activityCode sectionCodes deepLink nextStartDate }
        center { nodes { ... on Center { slug title } } }
        relatedPrograms { nodes { ... on Program { slug title } } }` + attachmentFields + `
      }
    }
  }
}`

const CentersQuery = `
query ExploreCenters {
  centers(first: 100) {
    nodes {
      slug
      title
      featuredImage { node { sourceUrl altText mediaDetails { width height } } }
      centersFields {
        summary
        address
        map { lat lng zoom }
        contactInfo { contactPhone contactEmail }
        amenities { nodes { name slug } }
        imagesforcarousel {
          image1 { image1Image { node { sourceUrl altText } } image1Cta }
          image2 { image2Image { node { sourceUrl altText } } image2Cta }
          image3 { image3Image { node { sourceUrl altText } } image3Cta }
        }
      }
    }
  }
}`

const MembershipsQuery = `
query ExploreMemberships {
  audiences(first: 100) { nodes { name slug } }
  programAreas(first: 100) { nodes { name slug } }
  memberships(first: 100) {
    nodes {
      slug
      title
      featuredImage { node { sourceUrl altText } }
      membershipFields {
        summary
        benefits
        eligibility
        joinRenewLink
        pricingTable { tier monthly annual joiningFee }
        audience { nodes { name slug } }
        programArea { nodes { name slug } }
        centers { nodes { ... on Center { slug title } } }` + attachmentFields + `
      }
    }
  }
}`

const EventsQuery = `
query ExploreEvents {
  events(first: 500) {
    nodes {
      slug
      title
      featuredImage { node { sourceUrl altText mediaDetails { width height } } }
      eventFields {
        summary
        longDescription
        startDateTime
        endDateTime
        cost
        registrationLink
        eventType
        locationOverride
        center { nodes { ... on Center { slug title } } }
        programArea { nodes { name slug } }
        audience { nodes { name slug } }
        session { nodes { name slug } }
        contactName
        contactEmail
        contactPhone
        relatedEvents { nodes { ... on Event { slug title } } }
      }
    }
  }
}`
